package domain

import (
	"database/sql"

	"gorm.io/gorm"
)

// Transactor is the slice of *gorm.DB the services use to run scoped
// transactions. gorm rolls the transaction back on error or panic before
// the failure reaches the caller.
type Transactor interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

var _ Transactor = (*gorm.DB)(nil)
