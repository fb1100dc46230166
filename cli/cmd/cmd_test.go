package cmd

import (
	"context"
	"testing"

	"github.com/alecthomas/kong"
)

func TestKongContextRoundTrip(t *testing.T) {
	t.Parallel()

	var cli struct{}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), ktx)

	if got := kongContextFrom(ctx); got != ktx {
		t.Errorf("kongContextFrom() = %p, want %p", got, ktx)
	}
}

func TestKongContextMissing(t *testing.T) {
	t.Parallel()

	if got := kongContextFrom(context.Background()); got != nil {
		t.Errorf("kongContextFrom() = %v, want nil", got)
	}
}
