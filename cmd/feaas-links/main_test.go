package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jssgo/jss-edge/internal/domain/services/feaas"
)

const jsonLayout = `{
  "sitecore": {
    "context": { "pageState": "edit" },
    "route": {
      "placeholders": {
        "zeta": [ { "componentName": "A", "params": { "LibraryId": "first" } } ],
        "alpha": [ { "componentName": "B", "params": { "LibraryId": "second" } } ]
      }
    }
  }
}`

const yamlLayout = `sitecore:
  context:
    pageState: normal
  route:
    placeholders:
      zeta:
        - componentName: A
          params:
            CSSStyles: "grid -library--first"
      alpha:
        - componentName: B
          fields:
            LibraryId:
              value: second
        - name: div
          attributes:
            class: -library--third
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadLayoutFileYAMLKeepsOrder(t *testing.T) {
	data, err := loadLayoutFile(writeFile(t, "layout.yaml", yamlLayout))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha"}, data.Sitecore.Route.Placeholders.Names())
	assert.Equal(t,
		[]string{"first", "second", "third"},
		feaas.NewResolver(feaas.DefaultServerURLs()).LibraryIDs(data))
}

func TestLoadLayoutFileErrors(t *testing.T) {
	_, err := loadLayoutFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = loadLayoutFile(writeFile(t, "bad.yml", "sitecore: [unclosed"))
	assert.Error(t, err)

	_, err = loadLayoutFile(writeFile(t, "bad.json", "{"))
	assert.Error(t, err)
}

func TestResolveJSONFile(t *testing.T) {
	out, err := run(t, "", "resolve", writeFile(t, "layout.json", jsonLayout))
	require.NoError(t, err)

	var result fileLinks
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Links, 2)
	assert.Equal(t, "https://feaas.blob.core.windows.net/styles/first/staged.css", result.Links[0].Href)
	assert.Equal(t, "https://feaas.blob.core.windows.net/styles/second/staged.css", result.Links[1].Href)
}

func TestResolveMultipleFiles(t *testing.T) {
	out, err := run(t, "", "resolve",
		writeFile(t, "a.json", jsonLayout),
		writeFile(t, "b.yaml", yamlLayout),
		"--edge-url", "https://edge-platform-pre-production.sitecorecloud.io")
	require.NoError(t, err)

	var results []fileLinks
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Len(t, results[1].Links, 3)
	assert.Equal(t, "https://feaasbeta.blob.core.windows.net/styles/first/published.css", results[1].Links[0].Href)
}

func TestResolveStdinHTML(t *testing.T) {
	out, err := run(t, jsonLayout, "resolve", "--format", "html")
	require.NoError(t, err)
	assert.Equal(t,
		`<link rel="stylesheet" href="https://feaas.blob.core.windows.net/styles/first/staged.css">`+"\n"+
			`<link rel="stylesheet" href="https://feaas.blob.core.windows.net/styles/second/staged.css">`+"\n",
		out)
}

func TestResolveUnknownFormat(t *testing.T) {
	_, err := run(t, jsonLayout, "resolve", "--format", "xml")
	assert.Error(t, err)
}

func TestURLCommand(t *testing.T) {
	out, err := run(t, "", "url", "lib", "--page-state", "preview",
		"--edge-url", "https://edge-platform-dev.sitecore-staging.cloud")
	require.NoError(t, err)
	assert.Equal(t, "https://feaasstaging.blob.core.windows.net/styles/lib/staged.css\n", out)

	_, err = run(t, "", "url")
	assert.Error(t, err)
}

func TestURLReadsEnvFile(t *testing.T) {
	// registered with t.Setenv so the value godotenv writes is restored afterwards
	t.Setenv("SITECORE_EDGE_URL", "")
	require.NoError(t, os.Unsetenv("SITECORE_EDGE_URL"))
	envFile := writeFile(t, ".env", "SITECORE_EDGE_URL=https://edge-platform-dev.sitecore-staging.cloud\n")

	out, err := run(t, "", "url", "lib", "--env-file", envFile)
	require.NoError(t, err)
	assert.Equal(t, "https://feaasstaging.blob.core.windows.net/styles/lib/published.css\n", out)

	out, err = run(t, "", "url", "lib", "--env-file", envFile,
		"--edge-url", "https://edge-platform-pre-production.sitecorecloud.io")
	require.NoError(t, err)
	assert.Equal(t, "https://feaasbeta.blob.core.windows.net/styles/lib/published.css\n", out)
}

func TestResolveReadsEnvironment(t *testing.T) {
	t.Setenv("SITECORE_EDGE_URL", "https://edge-platform-pre-production.sitecorecloud.io")

	out, err := run(t, "", "resolve", writeFile(t, "layout.json", jsonLayout))
	require.NoError(t, err)

	var result fileLinks
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Links, 2)
	assert.Equal(t, "https://feaasbeta.blob.core.windows.net/styles/first/staged.css", result.Links[0].Href)
}
