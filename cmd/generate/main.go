package main

import (
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/config"
	"github.com/pal-3/AlgorithmTradingBacktester/pkg/utils"
)

func main() {
	cfg := config.Default()

	schemaJSON, err := utils.GetSchemaFromConfig(cfg, "Pipeline Config",
		"Configuration for the market data ingestion pipeline")
	if err != nil {
		log.Fatalf("Failed to generate schema: %v", err)
	}

	schemaName := "pipeline-config-schema.json"
	schemaPath := filepath.Join("./config", schemaName)
	sampleConfigPath := filepath.Join("./config", "pipeline-config.yaml")

	if err := os.MkdirAll(filepath.Dir(schemaPath), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		log.Fatalf("Failed to write schema to file: %v", err)
	}

	// Never clobber an existing sample; the schema is always refreshed.
	if _, err := os.Stat(sampleConfigPath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("Failed to marshal sample config to yaml: %v", err)
		}
		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)
		if err := os.WriteFile(sampleConfigPath, yamlBytes, 0644); err != nil {
			log.Fatalf("Failed to write sample config to file: %v", err)
		}
		log.Printf("Sample config generated at %s", sampleConfigPath)
	}
	log.Printf("Schema generated at %s", schemaPath)
}
