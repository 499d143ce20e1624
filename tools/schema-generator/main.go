package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/catalogd/config"
	"github.com/grovetools/catalogd/schema"
)

func main() {
	// Define the output directory and ensure it exists.
	outputDir := "schema/definitions"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	generators := []struct {
		file     string
		generate func() ([]byte, error)
	}{
		{"config.schema.json", config.GenerateSchema},
		{"request.schema.json", schema.RequestSchema},
	}

	for _, g := range generators {
		data, err := g.generate()
		if err != nil {
			log.Fatalf("Error generating %s: %v", g.file, err)
		}

		outputPath := filepath.Join(outputDir, g.file)
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			log.Fatalf("Error writing schema file: %v", err)
		}
		log.Printf("Successfully generated schema at %s", outputPath)
	}
}
