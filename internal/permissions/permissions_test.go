package permissions

import (
	"testing"
	"time"

	"pizzaria-backend/internal/models"
)

var now = time.Date(2025, 6, 17, 15, 30, 0, 0, time.UTC) // terça, 15h30

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}

func TestManagerCannotEditOldEntry(t *testing.T) {
	d := CanEditTimeEntry(models.RoleManager, daysAgo(3), now)
	if d.Allowed {
		t.Fatal("gerente não deveria editar registro de 3 dias atrás")
	}
	if d.Reason == "" {
		t.Fatal("negativa deveria vir com motivo")
	}
}

func TestManagerCanEditWithinWindow(t *testing.T) {
	for _, n := range []int{0, 1, 2} {
		if d := CanEditTimeEntry(models.RoleManager, daysAgo(n), now); !d.Allowed {
			t.Fatalf("gerente deveria editar registro de %d dia(s) atrás: %s", n, d.Reason)
		}
	}
}

func TestAdminEditsAnyEntry(t *testing.T) {
	if d := CanEditTimeEntry(models.RoleAdmin, daysAgo(3), now); !d.Allowed {
		t.Fatal("admin deveria editar qualquer registro")
	}
	if d := CanEditTimeEntry(models.RoleAdmin, daysAgo(400), now); !d.Allowed {
		t.Fatal("admin deveria editar registros antigos")
	}
}

func TestManagerRetroactiveCreation(t *testing.T) {
	if d := CanCreateRetroactiveEntry(models.RoleManager, daysAgo(2), now); !d.Allowed {
		t.Fatalf("gerente deveria criar registro de 2 dias atrás: %s", d.Reason)
	}
	if d := CanCreateRetroactiveEntry(models.RoleManager, daysAgo(3), now); d.Allowed {
		t.Fatal("gerente não deveria criar registro de 3 dias atrás")
	}
	if d := CanCreateRetroactiveEntry(models.RoleAdmin, daysAgo(30), now); !d.Allowed {
		t.Fatal("admin cria registro para qualquer data")
	}
}

// A janela compara datas de calendário, não horas corridas: um registro de
// anteontem às 23h ainda cabe na janela de 2 dias.
func TestWindowUsesCalendarDays(t *testing.T) {
	entry := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	if d := CanEditTimeEntry(models.RoleManager, entry, now); !d.Allowed {
		t.Fatalf("diferença de 2 dias de calendário deveria passar: %s", d.Reason)
	}
}

// Registros são gravados em UTC, mas o servidor pode rodar em outro fuso.
// As duas datas precisam ser truncadas no mesmo fuso, senão um registro de
// 3 dias atrás conta como 2 e fura a janela do gerente.
func TestWindowWithNonUTCServer(t *testing.T) {
	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*60*60)
	moscow := time.FixedZone("Europe/Moscow", 3*60*60)

	entry := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	for _, zone := range []*time.Location{saoPaulo, moscow} {
		localNow := time.Date(2025, 6, 13, 9, 0, 0, 0, zone)
		if d := CanEditTimeEntry(models.RoleManager, entry, localNow); d.Allowed {
			t.Fatalf("registro de 3 dias atrás foi liberado para gerente em %s", zone)
		}

		within := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
		if d := CanEditTimeEntry(models.RoleManager, within, localNow); !d.Allowed {
			t.Fatalf("registro de 2 dias atrás deveria passar em %s: %s", zone, d.Reason)
		}
	}
}

func TestFutureDateAllowed(t *testing.T) {
	if d := CanCreateRetroactiveEntry(models.RoleManager, now.AddDate(0, 0, 1), now); !d.Allowed {
		t.Fatal("data futura não é retroativa, deveria passar")
	}
}

func TestOnlyAdminDeletes(t *testing.T) {
	if CanDeleteTimeEntry(models.RoleManager) {
		t.Fatal("gerente não exclui registro de ponto")
	}
	if !CanDeleteTimeEntry(models.RoleAdmin) {
		t.Fatal("admin exclui registro de ponto")
	}
}

func TestDistinctReasons(t *testing.T) {
	edit := CanEditTimeEntry(models.RoleManager, daysAgo(5), now)
	create := CanCreateRetroactiveEntry(models.RoleManager, daysAgo(5), now)
	if edit.Reason == create.Reason {
		t.Fatal("cada regra bloqueante tem sua própria mensagem")
	}
}
