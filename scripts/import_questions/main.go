package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/karlos-perez/hundred-to-one/internal/config"
	"github.com/karlos-perez/hundred-to-one/internal/models"
)

// Bulk-loads questions from an xlsx workbook. Expected row layout:
// question title in the first column, then six answer/score pairs.
// Usage: import_questions <file.xlsx>
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: import_questions <file.xlsx>")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	totalImported := 0
	totalSkipped := 0

	for _, sheetName := range f.GetSheetList() {
		fmt.Printf("Importing sheet: %s\n", sheetName)
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 { // header
				continue
			}
			question, err := parseRow(row)
			if err != nil {
				fmt.Printf("Skipping row %d: %v\n", i+1, err)
				totalSkipped++
				continue
			}
			if err := question.Validate(cfg.SumScore); err != nil {
				fmt.Printf("Skipping row %d: %v\n", i+1, err)
				totalSkipped++
				continue
			}

			var existing models.Question
			err = db.Where("title = ?", question.Title).First(&existing).Error
			if err == nil {
				fmt.Printf("Skipping row %d: question already exists\n", i+1)
				totalSkipped++
				continue
			}
			if err != gorm.ErrRecordNotFound {
				fmt.Printf("Error checking row %d: %v\n", i+1, err)
				totalSkipped++
				continue
			}

			if err := db.Create(question).Error; err != nil {
				fmt.Printf("Error creating question in row %d: %v\n", i+1, err)
				totalSkipped++
			} else {
				totalImported++
			}
		}
	}

	fmt.Printf("Imported %d questions, skipped %d.\n", totalImported, totalSkipped)
}

// parseRow reads one workbook row: title, then alternating answer
// title and score columns.
func parseRow(row []string) (*models.Question, error) {
	want := 1 + models.AnswersPerQuestion*2
	if len(row) < want {
		return nil, fmt.Errorf("expected %d columns, got %d", want, len(row))
	}

	question := &models.Question{Title: strings.TrimSpace(row[0])}
	for i := 0; i < models.AnswersPerQuestion; i++ {
		title := strings.TrimSpace(row[1+i*2])
		score, err := strconv.Atoi(strings.TrimSpace(row[2+i*2]))
		if err != nil {
			return nil, fmt.Errorf("answer %d has a non-numeric score: %q", i+1, row[2+i*2])
		}
		question.Answers = append(question.Answers, models.Answer{Title: title, Score: score})
	}
	return question, nil
}
