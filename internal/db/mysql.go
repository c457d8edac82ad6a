package db

import (
	"errors"
	"fmt"

	gosqlmysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// IsDuplicateKey reports whether err is a MySQL unique-constraint violation.
// The unique index on users.email is the actual uniqueness guarantee; the
// service-level pre-check is only a fast path.
func IsDuplicateKey(err error) bool {
	var mysqlErr *gosqlmysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
