package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendJSON(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "API base URL")
	filePath := flag.String("file", "", "Path to a text/markdown file to ingest")
	title := flag.String("title", "", "Document title (defaults to the file name)")
	description := flag.String("description", "", "Document description")
	organisationId := flag.Int("org", 1, "Organisation id")
	projectId := flag.Int("project", 1, "Project id")
	flag.Parse()

	if *filePath == "" {
		color.Red("Usage: ingest -file <path> [-title ...] [-org N] [-project N]")
		os.Exit(1)
	}

	content, err := os.ReadFile(*filePath)
	if err != nil {
		color.Red("Failed to read %s: %v", *filePath, err)
		os.Exit(1)
	}

	docTitle := *title
	if docTitle == "" {
		docTitle = strings.TrimSuffix(filepath.Base(*filePath), filepath.Ext(*filePath))
	}

	color.Cyan("🚀 Ingesting document into the knowledge base\n")

	// 1. Health check
	color.Yellow("\n1. Checking service health")
	resp, body, err := sendJSON("GET", *baseURL+"/api/v1/health/", nil)
	if err != nil {
		color.Red("Service unreachable: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var healthResp map[string]interface{}
	json.Unmarshal(body, &healthResp)
	prettyPrint(healthResp)

	// 2. Queue document
	color.Yellow("\n2. Queueing document '%s' (%d bytes)", docTitle, len(content))
	ingestReq := map[string]interface{}{
		"title":           docTitle,
		"description":     *description,
		"content":         string(content),
		"organisation_id": *organisationId,
		"project_id":      *projectId,
		"metadata": map[string]interface{}{
			"source_file": filepath.Base(*filePath),
		},
	}
	resp, body, err = sendJSON("POST", *baseURL+"/api/v1/document", ingestReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var ingestResp map[string]interface{}
	json.Unmarshal(body, &ingestResp)
	prettyPrint(ingestResp)

	if resp.StatusCode >= 300 {
		color.Red("\n❌ Ingestion request rejected")
		os.Exit(1)
	}

	color.Cyan("\n✅ Document queued, indexing happens in the background")
}
