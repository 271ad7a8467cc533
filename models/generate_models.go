package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Column Mismatch Report Usage:

Reports database columns that no field of the corresponding Go model maps to.

1. Set the environment variable: GENERATE_COLUMN_REPORT=true
2. Run the application: go run .

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: contact_messages ---
Found 1 columns not accounted for in model:
  - phone

--- Table: content ---
All columns are accounted for in the model.

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// All lists every persisted model, in migration order.
func All() []any {
	return []any{&Content{}, &Skill{}, &ContactMessage{}}
}

// GenerateModels migrates the schema and writes gorm/gen query helpers to outPath.
func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	db = db.Session(&gorm.Session{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Content{}, Skill{}, ContactMessage{})

	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("error during models migration: %w", err)
	}

	report, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}
	PrintColumnMismatchReport(os.Stdout, report)

	g.Execute()
	return nil
}

// ColumnMismatchReport maps each table name to the columns present in the
// database but absent from its model. Tables that do not exist yet are skipped.
func ColumnMismatchReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)
	migrator := db.Migrator()

	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("error parsing model %T: %w", model, err)
		}
		tableName := stmt.Schema.Table

		if !migrator.HasTable(tableName) {
			continue
		}

		columnTypes, err := migrator.ColumnTypes(tableName)
		if err != nil {
			return nil, fmt.Errorf("error getting columns for table %s: %w", tableName, err)
		}

		modelFields := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			modelFields[name] = true
		}

		mismatches := []string{}
		for _, col := range columnTypes {
			if !modelFields[col.Name()] {
				mismatches = append(mismatches, col.Name())
			}
		}
		report[tableName] = mismatches
	}

	return report, nil
}

func PrintColumnMismatchReport(w io.Writer, report map[string][]string) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	tables := make([]string, 0, len(report))
	for table := range report {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	total := 0
	for _, table := range tables {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", table)
		mismatches := report[table]
		if len(mismatches) == 0 {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
			continue
		}
		fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
		for _, col := range mismatches {
			fmt.Fprintf(w, "  - %s\n", col)
		}
		total += len(mismatches)
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
}
