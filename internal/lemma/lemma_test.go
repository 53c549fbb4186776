package lemma

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/topictagger/tagger"
)

const sampleResponse = "form\twsafter\tanas\tlemma\txpostag\n" +
	"Almát\t\" \"\t[]\talma\t[/N][Acc]\n" +
	"eszik\t\"\\n\"\t[]\teszik\t[/V][Prs.NDef.3Sg]\n" +
	"\n"

func TestParseResponse(t *testing.T) {
	lemmas, err := ParseResponse(sampleResponse)
	require.NoError(t, err)
	assert.Equal(t, []string{"alma", "eszik"}, lemmas)
}

func TestParseResponseHeaderOnly(t *testing.T) {
	lemmas, err := ParseResponse("form\twsafter\tanas\tlemma\txpostag")
	require.NoError(t, err)
	assert.Empty(t, lemmas)

	lemmas, err = ParseResponse("")
	require.NoError(t, err)
	assert.Empty(t, lemmas)
}

func TestParseResponseCRLF(t *testing.T) {
	lemmas, err := ParseResponse("h\r\nKörte\t \t[]\tkörte\t[/N]\r\n\r\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"körte"}, lemmas)
}

func TestParseResponseSkipsSingleCharacterLines(t *testing.T) {
	lemmas, err := ParseResponse("h\nő\nalma\t \t[]\talma\t[/N]\n.\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"alma"}, lemmas)
}

func TestParseResponseMalformed(t *testing.T) {
	_, err := ParseResponse("header\nalma\tonly two\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(tagger.LemmatizerConfig{URL: srv.URL + "/tok/morph/pos", TimeoutSeconds: 5})
	require.NoError(t, err)
	return c
}

func TestClientLemmatize(t *testing.T) {
	var gotText, gotPath, gotMethod string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		gotText = form.Get("text")
		_, _ = io.WriteString(w, sampleResponse)
	})

	lemmas, err := c.Lemmatize(context.Background(), "Almát eszik\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"alma", "eszik"}, lemmas)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/tok/morph/pos", gotPath)
	assert.Equal(t, "Almát eszik\n", gotText)
}

func TestClientProviderError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "boom")
	})

	_, err := c.Lemmatize(context.Background(), "alma\n")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusInternalServerError, perr.Status)
	assert.Equal(t, "boom", perr.Body)
	assert.Equal(t, "something happened with the request: 500 boom", perr.Error())
}

func TestClientMalformedResponse(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "header\nbroken\tline\n")
	})
	_, err := c.Lemmatize(context.Background(), "alma\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse lemmatizer response")
}

func TestClientCancelled(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Lemmatize(ctx, "alma\n")
	require.Error(t, err)
}

func TestNewRequiresURL(t *testing.T) {
	_, err := New(tagger.LemmatizerConfig{})
	require.Error(t, err)
}

type countingLemmatizer struct {
	calls int
	err   error
}

func (c *countingLemmatizer) Lemmatize(_ context.Context, text string) ([]string, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []string{text}, nil
}

func TestCached(t *testing.T) {
	inner := &countingLemmatizer{}
	c, err := NewCached(inner, 2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		lemmas, err := c.Lemmatize(context.Background(), "alma")
		require.NoError(t, err)
		assert.Equal(t, []string{"alma"}, lemmas)
	}
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, c.Len())

	// Mutating a returned slice must not corrupt the cache.
	lemmas, _ := c.Lemmatize(context.Background(), "alma")
	lemmas[0] = "changed"
	again, _ := c.Lemmatize(context.Background(), "alma")
	assert.Equal(t, []string{"alma"}, again)
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	boom := errors.New("down")
	inner := &countingLemmatizer{err: boom}
	c, err := NewCached(inner, 4)
	require.NoError(t, err)

	_, err = c.Lemmatize(context.Background(), "alma")
	require.ErrorIs(t, err, boom)
	_, err = c.Lemmatize(context.Background(), "alma")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, inner.calls)
	assert.Zero(t, c.Len())
}

func TestNewCachedInvalid(t *testing.T) {
	_, err := NewCached(&countingLemmatizer{}, 0)
	require.Error(t, err)
	_, err = NewCached(nil, 1)
	require.Error(t, err)
}
