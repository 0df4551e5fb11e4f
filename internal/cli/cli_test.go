package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": status < 400, "data": data})
}

func runCLI(t *testing.T, server, format string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--server", server, "--user", "7", "-o", format}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{12.5, "12.50"},
		{999.999, "1,000.00"},
		{1234567.891, "1,234,567.89"},
		{-1000, "-1,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.in))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a-very-...", truncate("a-very-long-name", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestTopService(t *testing.T) {
	assert.Equal(t, "-", topService(nil))
	assert.Equal(t, "EC2", topService(map[string]float64{"S3": 10, "EC2": 90, "RDS": 89}))
	assert.Equal(t, "A", topService(map[string]float64{"B": 5, "A": 5}))
}

func TestTable_Render(t *testing.T) {
	buf := new(bytes.Buffer)
	table := NewTable(buf, "NAME", "COST")
	table.AddRow("vm-1", "10.00")
	table.Render()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "----"))
	assert.Contains(t, lines[2], "vm-1")
}

func TestCollectCredentials_PromptsForMissingFields(t *testing.T) {
	flags := connectFlags{}
	flags.creds.AccessKeyID = "AKIA123"
	reader := bufio.NewReader(strings.NewReader("secret\n\n"))

	creds, err := collectCredentials("aws", flags, reader, io.Discard)

	require.NoError(t, err)
	assert.Equal(t, "AKIA123", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
	assert.Equal(t, "us-east-1", creds.Region)
}

func TestCollectCredentials_GCPReadsKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600))

	flags := connectFlags{credentialsFile: path}
	flags.creds.ProjectID = "proj-1"
	creds, err := collectCredentials("gcp", flags, bufio.NewReader(strings.NewReader("")), io.Discard)

	require.NoError(t, err)
	assert.Equal(t, "proj-1", creds.ProjectID)
	assert.JSONEq(t, `{"type":"service_account"}`, creds.ServiceAccountJSON)
}

func TestCollectCredentials_UnknownProvider(t *testing.T) {
	_, err := collectCredentials("oracle", connectFlags{}, bufio.NewReader(strings.NewReader("")), io.Discard)
	assert.Error(t, err)
}

func TestSyncCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sync", r.URL.Path)
		assert.Equal(t, "7", r.Header.Get("X-User-ID"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 7, body["days"])

		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"start":         "2025-03-09",
			"end":           "2025-03-15",
			"providers":     []string{"aws", "azure"},
			"resources":     4,
			"budgets":       1,
			"totalCost":     1500.5,
			"persistErrors": map[string]string{"azure": "database is locked"},
			"durationMs":    42,
		})
	}))
	defer srv.Close()

	out, err := runCLI(t, srv.URL, "table", "sync", "--days", "7")

	require.NoError(t, err)
	assert.Contains(t, out, "Synced 2025-03-09 to 2025-03-15")
	assert.Contains(t, out, "1,500.50")
	assert.Contains(t, out, "azure: database is locked")
}

func TestSyncCommand_RejectsHalfRange(t *testing.T) {
	_, err := runCLI(t, "http://127.0.0.1:0", "table", "sync", "--days", "0", "--start", "2025-01-01", "--end", "")
	assert.ErrorContains(t, err, "--start and --end")
}

func TestCostsCommand_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/costs", r.URL.Path)
		assert.Equal(t, "aws", r.URL.Query().Get("provider"))
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"totalCost": 100,
			"providers": []map[string]interface{}{
				{"provider": "aws", "totalCost": 100, "currency": "USD", "records": 2},
			},
		})
	}))
	defer srv.Close()

	out, err := runCLI(t, srv.URL, "json", "costs", "--provider", "aws")

	require.NoError(t, err)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.EqualValues(t, 100, got["totalCost"])
}

func TestRecommendationsCommand_Table(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"recommendations": []map[string]interface{}{
				{"id": 1, "provider": "azure", "title": "Right-size underutilized compute", "savings": 400, "effort": "medium", "category": "compute", "resources": 1},
			},
			"summary": map[string]interface{}{"count": 1, "totalSavings": 400, "affectedResources": 1, "totalSpend": 1500, "percentageReduction": 26.67},
		})
	}))
	defer srv.Close()

	out, err := runCLI(t, srv.URL, "table", "recommendations")

	require.NoError(t, err)
	assert.Contains(t, out, "Right-size underutilized compute")
	assert.Contains(t, out, "[M] medium")
	assert.Contains(t, out, "Potential savings:  400.00/month of 1,500.00 (26.7%)")
}

func TestCommand_RequiresUserID(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--server", "http://127.0.0.1:0", "--user", "0", "provider", "list"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	t.Setenv("SPENDLENS_USER_ID", "")

	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "no user ID configured")
}
