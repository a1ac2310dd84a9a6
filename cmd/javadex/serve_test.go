package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/javadex"
	main "github.com/fwojciec/javadex/cmd/javadex"
	"github.com/fwojciec/javadex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("rejects unknown index names", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Indexes = turbineIndexService(turbineBase)

		err := (&main.ServeCmd{Names: []string{"turbine", "missing"}, Addr: "127.0.0.1:0"}).Run(deps)

		assert.Equal(t, javadex.ENOTFOUND, javadex.ErrorCode(err))
		assert.Contains(t, stderr.String(), `index "missing" not found`)
		assert.Empty(t, stdout.String())
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		deps, stdout, _ := newDeps()
		deps.Ctx = ctx
		deps.Indexes = &mock.IndexService{}
		deps.Members = &mock.MemberService{}
		deps.Search = &mock.SearchService{}

		done := make(chan error, 1)
		go func() {
			done <- (&main.ServeCmd{Addr: "127.0.0.1:0"}).Run(deps)
		}()
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Serving on http://127.0.0.1:0")
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not stop after cancel")
		}
	})

	t.Run("reports a listen failure", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Indexes = &mock.IndexService{}

		err := (&main.ServeCmd{Addr: "not-an-address"}).Run(deps)

		assert.Equal(t, javadex.EUNAVAILABLE, javadex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
