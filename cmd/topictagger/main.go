// Command topictagger tags XML records with topics grown from seed keywords.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"yashubustudio/topictagger/internal/lemma"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func reportError(w io.Writer, err error) {
	var perr *lemma.ProviderError
	if errors.As(err, &perr) {
		fmt.Fprintf(w, "ERROR: %s\n", perr.Error())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
