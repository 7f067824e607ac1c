package models

import (
	"log"

	"github.com/mmdatafocus/retail_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Invoice{}, &InvoiceItem{},
		&InvoiceSequence{},
		&Setting{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
