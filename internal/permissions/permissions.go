// Package permissions concentra a política de acesso aos registros de
// ponto. Create e update consultam as MESMAS funções para a regra da
// janela de edição não divergir entre os dois caminhos. O "agora" é sempre
// parâmetro explícito: nada aqui lê o relógio do sistema.
package permissions

import (
	"fmt"
	"time"

	"pizzaria-backend/internal/models"
)

// Gerentes alteram/criam registros de até 2 dias atrás.
const editWindowDays = 2

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

// daysSince: diferença em dias de calendário (horas zeradas) entre now e
// a data do registro. Negativo para datas futuras. As duas datas são
// truncadas no MESMO fuso (o de now); misturar fusos encurtaria a conta em
// servidores fora de UTC.
func daysSince(entryDate, now time.Time) int {
	entryDate = entryDate.In(now.Location())
	entry := time.Date(entryDate.Year(), entryDate.Month(), entryDate.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(today.Sub(entry).Hours() / 24)
}

// CanAccessTimeEntries: quem pode ver/registrar ponto.
func CanAccessTimeEntries(role models.UserRole) bool {
	return role == models.RoleAdmin || role == models.RoleManager
}

// CanEditTimeEntry decide se o usuário pode alterar um registro existente.
// Admin sempre pode; gerente só dentro da janela de edição.
func CanEditTimeEntry(role models.UserRole, entryDate, now time.Time) Decision {
	if role == models.RoleAdmin {
		return allow()
	}

	if daysSince(entryDate, now) > editWindowDays {
		return Decision{
			Allowed: false,
			Reason: fmt.Sprintf(
				"Registro de %s não pode mais ser alterado. Gerentes só alteram registros até %d dias após a data. Solicite ao administrador.",
				entryDate.Format("02/01/2006"), editWindowDays,
			),
		}
	}

	return allow()
}

// CanCreateRetroactiveEntry decide se o usuário pode criar um registro
// para uma data passada.
func CanCreateRetroactiveEntry(role models.UserRole, entryDate, now time.Time) Decision {
	if role == models.RoleAdmin {
		return allow()
	}

	if daysSince(entryDate, now) > editWindowDays {
		return Decision{
			Allowed: false,
			Reason: fmt.Sprintf(
				"Não é possível criar registro para %s. Gerentes só registram ponto até %d dias no passado.",
				entryDate.Format("02/01/2006"), editWindowDays,
			),
		}
	}

	return allow()
}

// CanDeleteTimeEntry: somente administradores excluem registros de ponto.
func CanDeleteTimeEntry(role models.UserRole) bool {
	return role == models.RoleAdmin
}
