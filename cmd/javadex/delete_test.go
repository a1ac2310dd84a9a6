package main_test

import (
	"context"
	"testing"

	"github.com/fwojciec/javadex"
	main "github.com/fwojciec/javadex/cmd/javadex"
	"github.com/fwojciec/javadex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes index when --force is set", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		deps, stdout, _ := newDeps()
		deps.Indexes = &mock.IndexService{
			FindIndexByNameFn: func(_ context.Context, name string) (*javadex.Index, error) {
				return &javadex.Index{ID: "idx-123", Name: name}, nil
			},
			DeleteIndexFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		err := (&main.DeleteCmd{Name: "turbine", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "idx-123", deletedID)
		assert.Contains(t, stdout.String(), "Deleted")
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Indexes = &mock.IndexService{}

		err := (&main.DeleteCmd{Name: "turbine"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("reports unknown index", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Indexes = &mock.IndexService{
			FindIndexByNameFn: func(_ context.Context, name string) (*javadex.Index, error) {
				return nil, javadex.Errorf(javadex.ENOTFOUND, "index %q not found", name)
			},
		}

		err := (&main.DeleteCmd{Name: "missing", Force: true}).Run(deps)

		assert.Equal(t, javadex.ENOTFOUND, javadex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "javadex list")
	})
}
