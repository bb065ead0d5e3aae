package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Mrchuchi/confirmacion-asistencia/models"
)

func TestSearchPorCedulaExacta(t *testing.T) {
	db := newTestDB(t)
	crearInvitado(t, db, "Ana Gómez", "100", false)
	crearInvitado(t, db, "Luis Rojas", "200", false)
	service := NewAsistenciaService(db)

	result, err := service.Search(context.Background(), "  200  ")
	if err != nil {
		t.Fatalf("Search devolvió error: %v", err)
	}
	if result.Invitado.Cedula != "200" {
		t.Errorf("cédula = %q, se esperaba %q", result.Invitado.Cedula, "200")
	}
	if result.TotalPersonas != 1 {
		t.Errorf("total_personas = %d, se esperaba 1", result.TotalPersonas)
	}
}

func TestSearchPorNombreParcial(t *testing.T) {
	db := newTestDB(t)
	crearInvitado(t, db, "María Fernanda López", "300", false)
	service := NewAsistenciaService(db)

	for _, query := range []string{"fernanda", "LÓPEZ", "maría f"} {
		result, err := service.Search(context.Background(), query)
		if err != nil {
			t.Fatalf("Search(%q) devolvió error: %v", query, err)
		}
		if result.Invitado.Cedula != "300" {
			t.Errorf("Search(%q) resolvió la cédula %q", query, result.Invitado.Cedula)
		}
	}
}

func TestSearchResuelveViaAcompanante(t *testing.T) {
	db := newTestDB(t)
	titular := crearInvitado(t, db, "Pedro Pérez", "400", false)
	crearAcompanante(t, db, titular.ID, "Rosa Pérez", "401", false)
	service := NewAsistenciaService(db)

	result, err := service.Search(context.Background(), "401")
	if err != nil {
		t.Fatalf("Search devolvió error: %v", err)
	}
	if result.Invitado.ID != titular.ID {
		t.Errorf("se resolvió el invitado %d, se esperaba %d", result.Invitado.ID, titular.ID)
	}
	if result.TotalPersonas != 2 {
		t.Errorf("total_personas = %d, se esperaba 2", result.TotalPersonas)
	}
}

func TestSearchNoEncontrado(t *testing.T) {
	db := newTestDB(t)
	service := NewAsistenciaService(db)

	if _, err := service.Search(context.Background(), "inexistente"); !errors.Is(err, ErrInvitadoNoEncontrado) {
		t.Errorf("err = %v, se esperaba ErrInvitadoNoEncontrado", err)
	}
	if _, err := service.Search(context.Background(), "   "); !errors.Is(err, ErrConsultaVacia) {
		t.Errorf("err = %v, se esperaba ErrConsultaVacia", err)
	}
}

func TestSearchAsistenciaConfirmada(t *testing.T) {
	db := newTestDB(t)
	service := NewAsistenciaService(db)

	// Sin acompañantes: la bandera del invitado decide.
	solo := crearInvitado(t, db, "Solo Confirmado", "500", true)
	result, err := service.Search(context.Background(), solo.Cedula)
	if err != nil {
		t.Fatalf("Search devolvió error: %v", err)
	}
	if !result.AsistenciaConfirmada {
		t.Error("asistencia_confirmada = false para invitado confirmado sin acompañantes")
	}

	// Un acompañante sin confirmar bloquea la bandera agregada.
	titular := crearInvitado(t, db, "Titular", "600", true)
	pendiente := crearAcompanante(t, db, titular.ID, "Pendiente", "601", false)
	result, err = service.Search(context.Background(), titular.Cedula)
	if err != nil {
		t.Fatalf("Search devolvió error: %v", err)
	}
	if result.AsistenciaConfirmada {
		t.Error("asistencia_confirmada = true con un acompañante sin confirmar")
	}

	if err := db.Model(pendiente).Update("estado_asistencia", true).Error; err != nil {
		t.Fatalf("no se pudo confirmar el acompañante: %v", err)
	}
	result, err = service.Search(context.Background(), titular.Cedula)
	if err != nil {
		t.Fatalf("Search devolvió error: %v", err)
	}
	if !result.AsistenciaConfirmada {
		t.Error("asistencia_confirmada = false con todos confirmados")
	}
}

func TestConfirmarAsistencia(t *testing.T) {
	db := newTestDB(t)
	titular := crearInvitado(t, db, "Carla Díaz", "700", false)
	acomp := crearAcompanante(t, db, titular.ID, "Hijo Díaz", "701", false)
	service := NewAsistenciaService(db)

	result, err := service.ConfirmarAsistencia(context.Background(), models.ConfirmarAsistenciaRequest{
		InvitadoID:      titular.ID,
		AcompanantesIDs: []uint{acomp.ID},
	})
	if err != nil {
		t.Fatalf("ConfirmarAsistencia devolvió error: %v", err)
	}
	if !result.Success {
		t.Error("success = false")
	}
	if result.PersonasConfirmadas != 2 {
		t.Errorf("personas_confirmadas = %d, se esperaba 2", result.PersonasConfirmadas)
	}
	if got := contarLogs(t, db); got != 2 {
		t.Errorf("entradas de log = %d, se esperaban 2", got)
	}

	var tipos []string
	if err := db.Model(&models.AsistenciaLog{}).Order("id").Pluck("tipo", &tipos).Error; err != nil {
		t.Fatalf("no se pudieron leer los tipos del log: %v", err)
	}
	if len(tipos) != 2 || tipos[0] != models.TipoPrincipal || tipos[1] != models.TipoAcompanante {
		t.Errorf("tipos del log = %v", tipos)
	}
}

func TestConfirmarAsistenciaIdempotente(t *testing.T) {
	db := newTestDB(t)
	titular := crearInvitado(t, db, "Iván Mora", "800", false)
	acomp := crearAcompanante(t, db, titular.ID, "Sofía Mora", "801", false)
	service := NewAsistenciaService(db)

	req := models.ConfirmarAsistenciaRequest{InvitadoID: titular.ID, AcompanantesIDs: []uint{acomp.ID}}
	if _, err := service.ConfirmarAsistencia(context.Background(), req); err != nil {
		t.Fatalf("primera confirmación falló: %v", err)
	}
	logsAntes := contarLogs(t, db)

	result, err := service.ConfirmarAsistencia(context.Background(), req)
	if err != nil {
		t.Fatalf("segunda confirmación falló: %v", err)
	}
	if result.PersonasConfirmadas != 0 {
		t.Errorf("personas_confirmadas = %d en la repetición, se esperaba 0", result.PersonasConfirmadas)
	}
	if got := contarLogs(t, db); got != logsAntes {
		t.Errorf("el log creció de %d a %d en una repetición", logsAntes, got)
	}
}

func TestConfirmarNoTocaAcompananteAjeno(t *testing.T) {
	db := newTestDB(t)
	titular := crearInvitado(t, db, "Dueño", "900", false)
	otro := crearInvitado(t, db, "Otro", "910", false)
	ajeno := crearAcompanante(t, db, otro.ID, "Ajeno", "911", false)
	service := NewAsistenciaService(db)

	result, err := service.ConfirmarAsistencia(context.Background(), models.ConfirmarAsistenciaRequest{
		InvitadoID:      titular.ID,
		AcompanantesIDs: []uint{ajeno.ID},
	})
	if err != nil {
		t.Fatalf("ConfirmarAsistencia devolvió error: %v", err)
	}
	if result.PersonasConfirmadas != 1 {
		t.Errorf("personas_confirmadas = %d, se esperaba 1 (solo el titular)", result.PersonasConfirmadas)
	}

	var recargado models.Acompanante
	if err := db.First(&recargado, ajeno.ID).Error; err != nil {
		t.Fatalf("no se pudo recargar el acompañante: %v", err)
	}
	if recargado.EstadoAsistencia {
		t.Error("se confirmó un acompañante que no pertenece al invitado")
	}
}

func TestConfirmarInvitadoInexistente(t *testing.T) {
	db := newTestDB(t)
	service := NewAsistenciaService(db)

	_, err := service.ConfirmarAsistencia(context.Background(), models.ConfirmarAsistenciaRequest{InvitadoID: 999})
	if !errors.Is(err, ErrInvitadoNoEncontrado) {
		t.Errorf("err = %v, se esperaba ErrInvitadoNoEncontrado", err)
	}
	if got := contarLogs(t, db); got != 0 {
		t.Errorf("se escribieron %d entradas de log en una confirmación fallida", got)
	}
}

func TestConfirmarRevierteTodoSiFallaElLog(t *testing.T) {
	db := newTestDB(t)
	titular := crearInvitado(t, db, "Nora Vidal", "950", false)
	service := NewAsistenciaService(db)

	// Sin la tabla de logs, la inserción del log falla a mitad de la
	// transacción, después de marcar al invitado. El rollback debe
	// dejarlo sin confirmar.
	if err := db.Migrator().DropTable(&models.AsistenciaLog{}); err != nil {
		t.Fatalf("no se pudo eliminar la tabla de logs: %v", err)
	}

	_, err := service.ConfirmarAsistencia(context.Background(), models.ConfirmarAsistenciaRequest{InvitadoID: titular.ID})
	if !errors.Is(err, ErrConfirmacionFallida) {
		t.Fatalf("err = %v, se esperaba ErrConfirmacionFallida", err)
	}

	var recargado models.Invitado
	if err := db.First(&recargado, titular.ID).Error; err != nil {
		t.Fatalf("no se pudo recargar el invitado: %v", err)
	}
	if recargado.EstadoAsistencia {
		t.Error("el invitado quedó confirmado pese al fallo de la transacción")
	}
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)
	a := crearInvitado(t, db, "A", "1000", true)
	crearInvitado(t, db, "B", "1001", false)
	crearAcompanante(t, db, a.ID, "C", "1002", true)
	crearAcompanante(t, db, a.ID, "D", "1003", false)
	crearAcompanante(t, db, a.ID, "E", "1004", false)
	service := NewAsistenciaService(db)

	stats, err := service.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats devolvió error: %v", err)
	}
	if stats.TotalInvitados != 2 || stats.InvitadosConfirmados != 1 {
		t.Errorf("invitados = %d/%d, se esperaba 1/2", stats.InvitadosConfirmados, stats.TotalInvitados)
	}
	if stats.TotalAcompanantes != 3 || stats.AcompanantesConfirmados != 1 {
		t.Errorf("acompañantes = %d/%d, se esperaba 1/3", stats.AcompanantesConfirmados, stats.TotalAcompanantes)
	}
	if stats.TotalPersonas != stats.TotalInvitados+stats.TotalAcompanantes {
		t.Errorf("total_personas = %d, no es la suma de invitados y acompañantes", stats.TotalPersonas)
	}
	if stats.PersonasConfirmadas != stats.InvitadosConfirmados+stats.AcompanantesConfirmados {
		t.Errorf("personas_confirmadas = %d, no es la suma de confirmados", stats.PersonasConfirmadas)
	}
}

func TestEliminarTodos(t *testing.T) {
	db := newTestDB(t)
	a := crearInvitado(t, db, "A", "1100", true)
	b := crearInvitado(t, db, "B", "1101", false)
	crearInvitado(t, db, "C", "1102", false)
	crearAcompanante(t, db, a.ID, "D", "1103", false)
	crearAcompanante(t, db, b.ID, "E", "1104", false)
	for i := 0; i < 5; i++ {
		if err := db.Create(models.NewLogPrincipal(a.ID)).Error; err != nil {
			t.Fatalf("no se pudo sembrar el log: %v", err)
		}
	}
	service := NewAsistenciaService(db)

	result, err := service.EliminarTodos(context.Background())
	if err != nil {
		t.Fatalf("EliminarTodos devolvió error: %v", err)
	}
	if result.Invitados != 3 || result.Acompanantes != 2 || result.Logs != 5 {
		t.Errorf("eliminados = {%d,%d,%d}, se esperaba {3,2,5}",
			result.Invitados, result.Acompanantes, result.Logs)
	}

	invitados, err := service.GetAllInvitados(context.Background())
	if err != nil {
		t.Fatalf("GetAllInvitados devolvió error: %v", err)
	}
	if len(invitados) != 0 {
		t.Errorf("quedan %d invitados tras el borrado masivo", len(invitados))
	}
}

func TestAgregarInvitadoRapido(t *testing.T) {
	db := newTestDB(t)
	service := NewAsistenciaService(db)

	invitado, err := service.AgregarInvitadoRapido(context.Background(), "Nuevo Invitado", "1200")
	if err != nil {
		t.Fatalf("AgregarInvitadoRapido devolvió error: %v", err)
	}
	if !invitado.EstadoAsistencia {
		t.Error("el invitado rápido no quedó confirmado")
	}
	if got := contarLogs(t, db); got != 1 {
		t.Errorf("entradas de log = %d, se esperaba 1", got)
	}

	if _, err := service.AgregarInvitadoRapido(context.Background(), "Repetido", "1200"); !errors.Is(err, ErrCedulaInvitadoDuplicada) {
		t.Errorf("err = %v, se esperaba ErrCedulaInvitadoDuplicada", err)
	}
}

func TestAgregarAcompananteExtra(t *testing.T) {
	db := newTestDB(t)
	titular := crearInvitado(t, db, "Titular", "1300", true)
	service := NewAsistenciaService(db)

	acomp, err := service.AgregarAcompananteExtra(context.Background(), titular.ID, "Extra", "1301")
	if err != nil {
		t.Fatalf("AgregarAcompananteExtra devolvió error: %v", err)
	}
	if !acomp.EstadoAsistencia || acomp.InvitadoID != titular.ID {
		t.Errorf("acompañante extra mal creado: %+v", acomp)
	}

	if _, err := service.AgregarAcompananteExtra(context.Background(), 999, "X", "1302"); !errors.Is(err, ErrInvitadoNoEncontrado) {
		t.Errorf("err = %v, se esperaba ErrInvitadoNoEncontrado", err)
	}
	if _, err := service.AgregarAcompananteExtra(context.Background(), titular.ID, "Y", "1301"); !errors.Is(err, ErrCedulaAcompananteDuplicada) {
		t.Errorf("err = %v, se esperaba ErrCedulaAcompananteDuplicada", err)
	}
}
