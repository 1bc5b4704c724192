// Command seedcatalog loads a criteria catalog workbook into the database
// for one assessment period. The workbook carries one row per indicator or
// content, grouped under criterion headers.
// Usage: go run ./cmd/seedcatalog <catalog.xlsx> <period-uuid>
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"latrack/internal/config"
	"latrack/internal/domain"
	"latrack/internal/repository/postgres"
	"latrack/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 3 {
		fmt.Println("Usage: seedcatalog <catalog.xlsx> <period-uuid>")
		os.Exit(1)
	}
	xlsxPath := os.Args[1]
	periodID, err := uuid.Parse(os.Args[2])
	if err != nil {
		return fmt.Errorf("invalid period id: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	criteria, err := parseWorkbook(xlsxPath)
	if err != nil {
		return fmt.Errorf("parse workbook: %w", err)
	}
	log.Printf("parsed %d criteria from %s", len(criteria), xlsxPath)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	catalogSvc := service.NewCatalogService(postgres.NewCatalogRepo(db))
	if err := catalogSvc.Replace(context.Background(), periodID, criteria); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}

	log.Printf("catalog for period %s replaced with %d criteria", periodID, len(criteria))
	return nil
}

// parseWorkbook reads the first sheet. Columns:
// A=criterion id, B=criterion name, C=indicator id, D=indicator name,
// E=input type, F=standard level, G=evidence requirement,
// H=assignment type, I=assigned docs count, J=parent indicator id (set on
// content rows). Data starts at row index 1 (first row is the header).
func parseWorkbook(path string) ([]domain.Criterion, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	var critOrder []string
	critMap := make(map[string]*domain.Criterion)
	indOrder := make(map[string][]string)
	indMap := make(map[string]*domain.Indicator)

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		critID := strings.TrimSpace(cellVal(row, 0))
		itemID := strings.TrimSpace(cellVal(row, 2))
		if critID == "" || itemID == "" {
			continue
		}

		crit, ok := critMap[critID]
		if !ok {
			crit = &domain.Criterion{
				ID:    critID,
				Name:  strings.TrimSpace(cellVal(row, 1)),
				Order: len(critOrder) + 1,
			}
			critMap[critID] = crit
			critOrder = append(critOrder, critID)
		}

		parentID := strings.TrimSpace(cellVal(row, 9))
		if parentID != "" {
			// Content row under a composite indicator.
			parent, ok := indMap[parentID]
			if !ok {
				return nil, fmt.Errorf("row %d: content %s references unknown indicator %s", i+1, itemID, parentID)
			}
			parent.Contents = append(parent.Contents, domain.Content{
				ID:                  itemID,
				Name:                strings.TrimSpace(cellVal(row, 3)),
				InputType:           domain.InputType(strings.TrimSpace(cellVal(row, 4))),
				StandardLevel:       strings.TrimSpace(cellVal(row, 5)),
				EvidenceRequirement: strings.TrimSpace(cellVal(row, 6)),
			})
			continue
		}

		ind := &domain.Indicator{
			ID:                  itemID,
			Name:                strings.TrimSpace(cellVal(row, 3)),
			InputType:           domain.InputType(strings.TrimSpace(cellVal(row, 4))),
			StandardLevel:       strings.TrimSpace(cellVal(row, 5)),
			EvidenceRequirement: strings.TrimSpace(cellVal(row, 6)),
			ParentCriterionID:   critID,
		}
		if t := strings.TrimSpace(cellVal(row, 7)); t != "" {
			ind.AssignmentType = domain.AssignmentType(t)
		}
		if raw := strings.TrimSpace(cellVal(row, 8)); raw != "" {
			n, convErr := strconv.Atoi(raw)
			if convErr != nil {
				return nil, fmt.Errorf("row %d: assigned docs count %q is not a number", i+1, raw)
			}
			ind.AssignedDocsCount = n
		}
		indMap[itemID] = ind
		indOrder[critID] = append(indOrder[critID], itemID)
	}

	if len(critOrder) == 0 {
		return nil, fmt.Errorf("workbook contains no criteria rows")
	}

	criteria := make([]domain.Criterion, 0, len(critOrder))
	for _, critID := range critOrder {
		crit := *critMap[critID]
		for _, indID := range indOrder[critID] {
			crit.Indicators = append(crit.Indicators, *indMap[indID])
		}
		criteria = append(criteria, crit)
	}
	return criteria, nil
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
