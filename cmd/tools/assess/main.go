package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/shadowgoose/grantpulse/internal/db"
	"github.com/shadowgoose/grantpulse/internal/eligibility"
	"github.com/shadowgoose/grantpulse/internal/models"
	"github.com/shadowgoose/grantpulse/internal/source"
)

// Assesses every grant against the eligibility profile and prints the
// results as a table. Reads from a JSON grant file when -file is given,
// otherwise from the database.
func main() {
	filePath := flag.String("file", "", "JSON grant file to assess instead of the database")
	profilePath := flag.String("profile", "", "eligibility profile YAML (default: embedded)")
	save := flag.Bool("save", false, "write assessments back to the database")
	flag.Parse()

	ctx := context.Background()

	profile, err := eligibility.LoadProfile(*profilePath)
	if err != nil {
		log.Fatalf("Failed to load eligibility profile: %v", err)
	}

	var grants []models.GrantRecord
	var store *db.Store
	if *filePath != "" {
		grants, err = source.NewFileSource(*filePath).ListGrants(ctx)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		pool, err := db.Connect(ctx)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		store = db.NewStore(pool)
		grants, err = store.ListGrants(ctx)
		if err != nil {
			log.Fatal(err)
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Grant", "Funder", "Category", "Confidence", "Tags", "Amount", "Keywords", "Location"})

	for _, grant := range grants {
		assessment := eligibility.Assess(grant, profile)
		t.AppendRow(table.Row{
			grant.Name, grant.Funder, assessment.Category,
			fmt.Sprintf("%.2f", assessment.Confidence),
			fmt.Sprintf("%.2f", assessment.Details.TagScore),
			fmt.Sprintf("%.2f", assessment.Details.AmountScore),
			fmt.Sprintf("%.2f", assessment.Details.KeywordScore),
			fmt.Sprintf("%.2f", assessment.Details.LocationScore),
		})

		if *save && store != nil && grant.ID != "" {
			if err := store.SaveAssessment(ctx, grant.ID, assessment); err != nil {
				log.Printf("Failed to save assessment for %s: %v", grant.ID, err)
			}
		}
	}
	t.Render()
}
