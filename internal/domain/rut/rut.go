// Package rut valida y normaliza RUT chilenos (módulo 11).
package rut

import (
	"strings"

	"github.com/NinoOnFire/ticashop/internal/domain"
)

// Normalizar limpia puntos, guión y espacios y devuelve cuerpo+DV en mayúscula.
// "12.345.678-5" → "123456785". No valida el dígito verificador.
func Normalizar(rut string) string {
	r := strings.NewReplacer(".", "", "-", "", " ", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(rut)))
}

// Validar verifica largo, caracteres y dígito verificador (módulo 11).
// Acepta formatos con o sin puntos y guión. Devuelve domain.ErrRUTInvalido
// ante cualquier problema; la validación ocurre antes de toda mutación.
func Validar(rut string) error {
	limpio := Normalizar(rut)
	if len(limpio) < 2 || len(limpio) > 9 {
		return domain.ErrRUTInvalido
	}
	cuerpo := limpio[:len(limpio)-1]
	dv := limpio[len(limpio)-1]

	for _, c := range cuerpo {
		if c < '0' || c > '9' {
			return domain.ErrRUTInvalido
		}
	}
	if DigitoVerificador(cuerpo) != dv {
		return domain.ErrRUTInvalido
	}
	return nil
}

// DigitoVerificador calcula el DV módulo 11 del cuerpo numérico.
// Retorna '0'-'9' o 'K'. Cuerpos con caracteres no numéricos producen
// un DV que nunca coincide ('?').
func DigitoVerificador(cuerpo string) byte {
	suma := 0
	factor := 2
	for i := len(cuerpo) - 1; i >= 0; i-- {
		c := cuerpo[i]
		if c < '0' || c > '9' {
			return '?'
		}
		suma += int(c-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	resto := 11 - (suma % 11)
	switch resto {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + resto)
	}
}

// Formatear devuelve el RUT en formato canónico con puntos y guión:
// "123456785" → "12.345.678-5". RUT malformados se devuelven tal cual.
func Formatear(rut string) string {
	limpio := Normalizar(rut)
	if len(limpio) < 2 {
		return rut
	}
	cuerpo := limpio[:len(limpio)-1]
	dv := limpio[len(limpio)-1:]

	var b strings.Builder
	for i, c := range cuerpo {
		resto := len(cuerpo) - i
		if i > 0 && resto%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String() + "-" + dv
}
