// Package cedulas normaliza cédulas provenientes de hojas de cálculo.
//
// Las celdas numéricas de Excel llegan como "12345678.0" y las celdas
// vacías como "" o "nan"; estas reglas limpian esos artefactos antes de
// deduplicar o crear registros.
package cedulas

import "strings"

// Limpiar recorta espacios y elimina el sufijo ".0" cuando el resto del
// valor es un entero. Cualquier otro valor se devuelve solo recortado.
func Limpiar(valor string) string {
	valor = strings.TrimSpace(valor)
	if resto, ok := strings.CutSuffix(valor, ".0"); ok && esEntero(resto) {
		return resto
	}
	return valor
}

// EsFaltante indica si el valor ya limpio debe tratarse como ausente.
func EsFaltante(valor string) bool {
	return valor == "" || strings.EqualFold(valor, "nan")
}

func esEntero(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
