package checks

import (
	"fmt"
	"reflect"
	"strings"

	"shipment-gateway/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing a model with its live table.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
}

// CheckSchema verifies the table behind model using its gorm tags as the
// source of truth. Fields without a column tag are skipped; a type is only
// compared when the tag names one.
func CheckSchema(db *gorm.DB, model any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model %s is not a struct", t)
	}
	tabler, ok := reflect.New(t).Interface().(interface{ TableName() string })
	if !ok {
		return nil, fmt.Errorf("model %s does not implement TableName", t.Name())
	}

	report := &SchemaReport{
		Table:          tabler.TableName(),
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
	}

	actual, err := database.GetTableColumns(db, report.Table)
	if err != nil {
		return nil, err
	}
	actualMap := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		actualMap[col.Field] = col
	}

	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("gorm")
		colName := parseGormTag(tag, "column")
		if colName == "" {
			continue
		}

		col, exists := actualMap[colName]
		if !exists {
			report.MissingColumns = append(report.MissingColumns, colName)
			report.Matched = false
			continue
		}

		if expType := strings.ToLower(parseGormTag(tag, "type")); expType != "" && !strings.Contains(col.Type, expType) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", colName, expType, col.Type))
			report.Matched = false
		}
	}

	return report, nil
}

func parseGormTag(tag, key string) string {
	for _, p := range strings.Split(tag, ";") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(p), key+":"); ok {
			return v
		}
	}
	return ""
}
