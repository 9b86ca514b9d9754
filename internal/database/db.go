package database

import (
	"log"

	"pizzaria-backend/internal/config"
	"pizzaria-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError mapeia violação de constraint para gorm.ErrDuplicatedKey
	// (o ponto depende disso para detectar registro duplicado sob concorrência)
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.TimeEntry{},
		&models.Advance{},
		&models.PayrollEntry{},
		&models.PayrollPeriod{},
		&models.PayrollPayment{},
		&models.Expense{},
		&models.Revenue{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.SalesOrder{},
		&models.ShiftConfig{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	// Garante o índice único composto do ponto mesmo em bancos criados por
	// versões antigas (o pre-check da aplicação não cobre corrida de
	// requisições concorrentes; o constraint cobre).
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_employee_date
		ON time_entries(employee_id, date)
	`).Error; err != nil {
		log.Printf("Erro ao criar índice único de ponto (pode já existir): %v", err)
	}

	seedShiftConfigs()

	log.Println("Conexão com o banco ok. Migration concluída.")
}

// seedShiftConfigs: cria as três chaves de configuração de turno caso não
// existam. São apenas defaults de exibição do cadastro de funcionários.
func seedShiftConfigs() {
	defaults := []models.ShiftConfig{
		{Key: "lunch", Label: "Almoço", DefaultValue: 0},
		{Key: "dinner_weekday", Label: "Jantar (semana)", DefaultValue: 0},
		{Key: "dinner_weekend", Label: "Jantar (fim de semana)", DefaultValue: 0},
	}
	for _, def := range defaults {
		var count int64
		DB.Model(&models.ShiftConfig{}).Where("key = ?", def.Key).Count(&count)
		if count == 0 {
			if err := DB.Create(&def).Error; err != nil {
				log.Printf("Erro ao criar shift config %s: %v", def.Key, err)
			}
		}
	}
}
