package mysql

import (
	"gorm.io/gorm"

	appDomain "lms-backend/internal/domain/application"
	"lms-backend/internal/domain/audit"
	clientDomain "lms-backend/internal/domain/client"
	loanDomain "lms-backend/internal/domain/loan"
	notifDomain "lms-backend/internal/domain/notification"
	taskDomain "lms-backend/internal/domain/task"
)

// AutoMigrate creates or updates every table the repositories depend on.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&clientDomain.Client{},
		&appDomain.Application{},
		&appDomain.StatusHistory{},
		&appDomain.Note{},
		&appDomain.Document{},
		&appDomain.DocumentRequirement{},
		&loanDomain.Loan{},
		&loanDomain.Installment{},
		&loanDomain.Repayment{},
		&loanDomain.Disbursement{},
		&taskDomain.Task{},
		&notifDomain.Notification{},
		&audit.Entry{},
		&Role{},
		&UserRole{},
	)
}
