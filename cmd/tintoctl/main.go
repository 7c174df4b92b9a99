package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag     string
	sessionFlag string
	rootCmd     = &cobra.Command{
		Use:   "tintoctl",
		Short: "CLI client for the group service REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Group service base URL")
	rootCmd.PersistentFlags().StringVarP(&sessionFlag, "session", "s", "", "Session token (MU-SESSION-ID)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func doRequest(method, url string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/vnd.api+json")
	}
	if sessionFlag != "" {
		req.Header.Set("MU-SESSION-ID", sessionFlag)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s: %s", resp.Status, string(data))
	}
	return data, nil
}

func doGet(url string) ([]byte, error) { return doRequest(http.MethodGet, url, nil) }

func doPost(url string, p interface{}) ([]byte, error) { return doRequest(http.MethodPost, url, p) }

func doDelete(url string) ([]byte, error) { return doRequest(http.MethodDelete, url, nil) }

// attributesBody wraps attributes in the JSON:API request envelope.
func attributesBody(attrs map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"data": map[string]interface{}{"attributes": attrs}}
}
