package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/topictagger/internal/document"
	"yashubustudio/topictagger/internal/lemma"
)

const testVectors = "alma 1 0\nkörte 0.8 0.6\nszilva 0.6 0.8\nautó 0 1\n"

const testInput = `<records>
  <record><descriptions><title>Körte</title></descriptions></record>
  <record><descriptions><text>Autó</text></descriptions></record>
</records>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func lemmatizerServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, "maintenance")
			return
		}
		_ = r.ParseForm()
		var b strings.Builder
		b.WriteString("form\twsafter\tanas\tlemma\txpostag\n")
		for _, word := range strings.Fields(r.PostForm.Get("text")) {
			b.WriteString(word + "\t\" \"\t[]\t" + strings.ToLower(word) + "\t[/N]\n")
		}
		_, _ = io.WriteString(w, b.String())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	vectors := writeFile(t, dir, "vectors.txt", testVectors)
	in := writeFile(t, dir, "input.xml", testInput)
	out := filepath.Join(dir, "output.xml")
	srv := lemmatizerServer(t, http.StatusOK)

	stdout, err := execute(t, "run",
		"--config", writeFile(t, dir, "config.json", `{"seeds":["alma"]}`),
		"--vectors", vectors, "-i", in, "-o", out,
		"--lemmatizer-url", srv.URL, "--lemma-cache", "4")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 records, 1 tagged, 1 tags appended")

	doc, err := document.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"alma"}, doc.Records()[0].TagIDs())
	assert.Empty(t, doc.Records()[1].TagIDs())
}

func TestRunCommandProviderFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "output.xml")
	srv := lemmatizerServer(t, http.StatusServiceUnavailable)

	_, err := execute(t, "run", "--seeds", "alma",
		"--vectors", writeFile(t, dir, "vectors.txt", testVectors),
		"-i", writeFile(t, dir, "input.xml", testInput), "-o", out,
		"--lemmatizer-url", srv.URL)
	require.Error(t, err)

	var stderr bytes.Buffer
	reportError(&stderr, err)
	assert.Equal(t, "ERROR: something happened with the request: 503 maintenance\n", stderr.String())

	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestReportErrorGeneric(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("bad input"))
	assert.Equal(t, "Error: bad input\n", buf.String())

	buf.Reset()
	reportError(&buf, &lemma.ProviderError{Status: 400, Body: "x"})
	assert.True(t, strings.HasPrefix(buf.String(), "ERROR: "))
}

func TestClustersCommand(t *testing.T) {
	dir := t.TempDir()
	stdout, err := execute(t, "clusters", "--seeds", "körte,alma",
		"--vectors", writeFile(t, dir, "vectors.txt", testVectors), "--threshold", "0.7")
	require.NoError(t, err)
	assert.Equal(t, "alma\tkörte\nkörte\talma szilva\n", stdout)
}

func TestClustersCommandJSON(t *testing.T) {
	dir := t.TempDir()
	stdout, err := execute(t, "clusters", "--json", "--seeds", "alma",
		"--vectors", writeFile(t, dir, "vectors.txt", testVectors), "--threshold", "0.7")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"Tag": "alma"`)
}

func TestNeighborsCommand(t *testing.T) {
	dir := t.TempDir()
	stdout, err := execute(t, "neighbors", "alma", "banán", "--top-n", "2", "--threshold", "0.7",
		"--vectors", writeFile(t, dir, "vectors.txt", testVectors))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "alma\tkörte\t0.8000\t+", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "\t-"))
	assert.Equal(t, "banán\t(no neighbours)", lines[2])
}

func TestNeighborsCommandRequiresWord(t *testing.T) {
	_, err := execute(t, "neighbors")
	require.Error(t, err)
}

func TestVectorsImportCommand(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "vectors.db")
	stdout, err := execute(t, "vectors", "import", "--src", writeFile(t, dir, "vectors.txt", testVectors), "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "imported 4 vectors (dim 2)")

	stdout, err = execute(t, "clusters", "--seeds", "alma", "--vectors", db, "--threshold", "0.7")
	require.NoError(t, err)
	assert.Equal(t, "alma\tkörte\n", stdout)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	_, err := execute(t, "config", "init", "--config", path, "--threshold", "0.65", "--seeds", "kép")
	require.NoError(t, err)

	stdout, err := execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"threshold": 0.65`)
	assert.Contains(t, stdout, `"kép"`)
}

func TestConfigShowErrors(t *testing.T) {
	_, err := execute(t, "config", "show", "--config", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = execute(t, "config", "show", "--threshold", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Threshold")
}
