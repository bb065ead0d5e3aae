package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"
	"github.com/Mrchuchi/confirmacion-asistencia/pkg/cedulas"
	"github.com/Mrchuchi/confirmacion-asistencia/repositories"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportServiceError errores de validación de la importación.
type ImportServiceError string

func (e ImportServiceError) Error() string { return string(e) }

const (
	ErrArchivoIlegible    ImportServiceError = "no se pudo leer el archivo Excel"
	ErrHojaInvitadosFalta ImportServiceError = "el archivo Excel debe contener una hoja llamada 'Invitados'"
	ErrImportacionFallida ImportServiceError = "error durante la importación"
	ErrColumnasFaltantes  ImportServiceError = "faltan columnas requeridas"
	ErrHojaVacia          ImportServiceError = "la hoja está vacía"
)

// Nombres de hoja aceptados, comparados tras normalizar (trim, minúsculas,
// sin tildes ni eñes). La hoja de acompañantes es opcional.
var (
	hojasInvitados    = map[string]bool{"invitados": true}
	hojasAcompanantes = map[string]bool{"acompanantes": true}
)

var columnasInvitados = []string{"cedula", "nombre", "campana_area", "eps", "sede"}
var columnasAcompanantes = []string{"cedula", "nombre", "edad", "parentesco", "eps_acompanante", "cedula_invitado_principal"}

// IImportService reconciliación de importaciones de Excel.
type IImportService interface {
	ImportarExcel(ctx context.Context, contenido []byte) (*models.ImportResult, error)
	GenerarPlantilla() ([]byte, error)
}

// ImportService implementa IImportService.
type ImportService struct {
	db *gorm.DB
}

// NewImportService crea el servicio sobre el handle de BD dado.
func NewImportService(db *gorm.DB) IImportService {
	return &ImportService{db: db}
}

// ImportarExcel procesa el archivo en dos fases: primero los invitados y,
// tras confirmar (commit) esa fase, los acompañantes, de modo que las
// filas de acompañantes puedan resolver cédulas recién creadas. La
// importación NO es atómica de extremo a extremo: si la segunda fase
// falla, los invitados de la primera quedan confirmados. Cada fila ya
// existente o con cédula inválida se omite y se cuenta, nunca falla.
func (s *ImportService) ImportarExcel(ctx context.Context, contenido []byte) (*models.ImportResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(contenido))
	if err != nil {
		configslog.Log.Warn("ImportarExcel: archivo ilegible", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrArchivoIlegible, err)
	}
	defer f.Close()

	hojaInvitados := buscarHoja(f, hojasInvitados)
	if hojaInvitados == "" {
		return nil, ErrHojaInvitadosFalta
	}

	result := &models.ImportResult{HojasProcesadas: []string{hojaInvitados}}

	filas, err := f.GetRows(hojaInvitados)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchivoIlegible, err)
	}
	columnas, err := validarColumnas(hojaInvitados, filas, columnasInvitados)
	if err != nil {
		return nil, err
	}

	// Fase 1: invitados. Commit antes de procesar acompañantes.
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		invitadoRepoTx := repositories.NewInvitadoRepositoryTx(tx)
		for _, fila := range filas[1:] {
			cedula := cedulas.Limpiar(celda(fila, columnas["cedula"]))
			if cedulas.EsFaltante(cedula) {
				result.InvitadosOmitidos++
				continue
			}
			if _, err := invitadoRepoTx.FindByCedula(ctx, cedula); err == nil {
				result.InvitadosOmitidos++
				continue
			} else if err != repositories.ErrNotFound {
				return err
			}
			invitado := &models.Invitado{
				Nombre:           strings.TrimSpace(celda(fila, columnas["nombre"])),
				Cedula:           cedula,
				CampanaArea:      opcional(celda(fila, columnas["campana_area"])),
				EPS:              opcional(celda(fila, columnas["eps"])),
				Sede:             opcional(celda(fila, columnas["sede"])),
				EstadoAsistencia: false,
			}
			if err := invitadoRepoTx.Create(ctx, invitado); err != nil {
				return err
			}
			result.InvitadosCreados++
		}
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("ImportarExcel: fase de invitados fallida", zap.Error(txErr))
		return nil, fmt.Errorf("%w: %v", ErrImportacionFallida, txErr)
	}

	hojaAcompanantes := buscarHoja(f, hojasAcompanantes)
	if hojaAcompanantes == "" {
		return result, nil
	}
	result.HojasProcesadas = append(result.HojasProcesadas, hojaAcompanantes)

	filas, err = f.GetRows(hojaAcompanantes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchivoIlegible, err)
	}
	columnas, err = validarColumnas(hojaAcompanantes, filas, columnasAcompanantes)
	if err != nil {
		return nil, err
	}

	// Fase 2: acompañantes, resueltos contra los invitados ya confirmados.
	txErr = s.db.Transaction(func(tx *gorm.DB) error {
		invitadoRepoTx := repositories.NewInvitadoRepositoryTx(tx)
		acompananteRepoTx := repositories.NewAcompananteRepositoryTx(tx)
		for _, fila := range filas[1:] {
			cedula := cedulas.Limpiar(celda(fila, columnas["cedula"]))
			cedulaTitular := cedulas.Limpiar(celda(fila, columnas["cedula_invitado_principal"]))
			if cedulas.EsFaltante(cedula) || cedulas.EsFaltante(cedulaTitular) {
				result.AcompanantesOmitidos++
				continue
			}
			titular, err := invitadoRepoTx.FindByCedula(ctx, cedulaTitular)
			if err != nil {
				if err == repositories.ErrNotFound {
					result.AcompanantesOmitidos++
					continue
				}
				return err
			}
			if _, err := acompananteRepoTx.FindByCedula(ctx, cedula); err == nil {
				result.AcompanantesOmitidos++
				continue
			} else if err != repositories.ErrNotFound {
				return err
			}
			acompanante := &models.Acompanante{
				InvitadoID:       titular.ID,
				Nombre:           strings.TrimSpace(celda(fila, columnas["nombre"])),
				Cedula:           cedula,
				Edad:             parsearEdad(celda(fila, columnas["edad"])),
				Parentesco:       opcional(celda(fila, columnas["parentesco"])),
				EPS:              opcional(celda(fila, columnas["eps_acompanante"])),
				EstadoAsistencia: false,
			}
			if err := acompananteRepoTx.Create(ctx, acompanante); err != nil {
				return err
			}
			result.AcompanantesCreados++
		}
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("ImportarExcel: fase de acompañantes fallida", zap.Error(txErr))
		return nil, fmt.Errorf("%w: %v", ErrImportacionFallida, txErr)
	}

	configslog.SLog.Infof("Importación completada: %d invitados creados (%d omitidos), %d acompañantes creados (%d omitidos)",
		result.InvitadosCreados, result.InvitadosOmitidos, result.AcompanantesCreados, result.AcompanantesOmitidos)
	return result, nil
}

// GenerarPlantilla compone el libro de ejemplo con las dos hojas y las
// columnas requeridas para descarga desde el frontend.
func (s *ImportService) GenerarPlantilla() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Invitados"); err != nil {
		return nil, err
	}
	filasInvitados := [][]interface{}{
		{"cedula", "nombre", "campana_area", "eps", "sede"},
		{"12345678", "Juan Pérez", "Marketing Digital", "Sanitas", "Sede Principal"},
		{"87654321", "María González", "Recursos Humanos", "Nueva EPS", "Sede Norte"},
	}
	for i, fila := range filasInvitados {
		if err := f.SetSheetRow("Invitados", fmt.Sprintf("A%d", i+1), &fila); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet("Acompanantes"); err != nil {
		return nil, err
	}
	filasAcompanantes := [][]interface{}{
		{"cedula", "nombre", "edad", "parentesco", "eps_acompanante", "cedula_invitado_principal"},
		{"12345679", "Ana Pérez", 25, "Esposa", "Sanitas", "12345678"},
		{"87654322", "Carlos González", 30, "Esposo", "Nueva EPS", "87654321"},
	}
	for i, fila := range filasAcompanantes {
		if err := f.SetSheetRow("Acompanantes", fmt.Sprintf("A%d", i+1), &fila); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buscarHoja devuelve el nombre real de la primera hoja cuyo nombre
// normalizado figura en el conjunto aceptado.
func buscarHoja(f *excelize.File, aceptadas map[string]bool) string {
	for _, nombre := range f.GetSheetList() {
		if aceptadas[normalizarNombre(nombre)] {
			return nombre
		}
	}
	return ""
}

var plegadorTildes = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
)

func normalizarNombre(nombre string) string {
	return plegadorTildes.Replace(strings.ToLower(strings.TrimSpace(nombre)))
}

// validarColumnas mapea los encabezados normalizados a su índice y exige
// las columnas requeridas; el error enumera faltantes y disponibles. Una
// hoja sin filas se reporta aparte, para no confundirla con un encabezado
// malformado.
func validarColumnas(hoja string, filas [][]string, requeridas []string) (map[string]int, error) {
	if len(filas) == 0 {
		return nil, fmt.Errorf("%w: la hoja '%s' no tiene fila de encabezados", ErrHojaVacia, hoja)
	}
	columnas := make(map[string]int, len(filas[0]))
	disponibles := make([]string, 0, len(filas[0]))
	for i, encabezado := range filas[0] {
		nombre := strings.ToLower(strings.TrimSpace(encabezado))
		if nombre == "" {
			continue
		}
		if _, ok := columnas[nombre]; !ok {
			columnas[nombre] = i
			disponibles = append(disponibles, nombre)
		}
	}
	var faltantes []string
	for _, col := range requeridas {
		if _, ok := columnas[col]; !ok {
			faltantes = append(faltantes, col)
		}
	}
	if len(faltantes) > 0 {
		return nil, fmt.Errorf("%w en la hoja '%s': %v (disponibles: %v)", ErrColumnasFaltantes, hoja, faltantes, disponibles)
	}
	return columnas, nil
}

// celda acceso seguro: GetRows recorta las colas vacías de cada fila.
func celda(fila []string, idx int) string {
	if idx < 0 || idx >= len(fila) {
		return ""
	}
	return fila[idx]
}

// opcional convierte una celda vacía o "nan" en NULL.
func opcional(valor string) *string {
	valor = strings.TrimSpace(valor)
	if valor == "" || strings.EqualFold(valor, "nan") {
		return nil
	}
	return &valor
}

// parsearEdad convierte la celda a entero; cualquier fallo de parseo
// produce NULL, nunca el rechazo de la fila.
func parsearEdad(valor string) *int {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return nil
	}
	if edad, err := strconv.Atoi(valor); err == nil {
		return &edad
	}
	// Celdas numéricas pueden llegar como "25.0".
	if flotante, err := strconv.ParseFloat(valor, 64); err == nil {
		edad := int(flotante)
		return &edad
	}
	return nil
}

var _ IImportService = (*ImportService)(nil)
