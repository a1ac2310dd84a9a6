package etree_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fwojciec/javadex"
	"github.com/fwojciec/javadex/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	members := []*javadex.Member{
		{Package: "org.apache.turbine.test", Class: "BaseTestCase", Label: "attributes"},
		{Module: "turbine", Package: "org.apache.turbine.pipeline", Class: "PipelineTest.Worker", Label: "Worker(Pipeline)", URL: "%3Cinit%3E(org.apache.turbine.pipeline.Pipeline)"},
	}

	var buf bytes.Buffer
	require.NoError(t, etree.Encode(&buf, members))

	out := buf.String()
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<member package="org.apache.turbine.test" class="BaseTestCase" label="attributes"/>`)
	assert.Contains(t, out, `module="turbine"`)
	assert.Contains(t, out, `url="%3Cinit%3E(org.apache.turbine.pipeline.Pipeline)"`)

	decoded, err := etree.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, members, decoded)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("rejects wrong root", func(t *testing.T) {
		t.Parallel()

		_, err := etree.Decode(strings.NewReader(`<members><member package="a" class="B" label="c"/></members>`))
		require.Error(t, err)
		assert.Equal(t, javadex.EINVALID, javadex.ErrorCode(err))
	})

	t.Run("rejects member without label", func(t *testing.T) {
		t.Parallel()

		_, err := etree.Decode(strings.NewReader(`<memberSearchIndex><member package="a" class="B"/></memberSearchIndex>`))
		require.Error(t, err)
		assert.Equal(t, javadex.EINVALID, javadex.ErrorCode(err))
	})

	t.Run("rejects malformed xml", func(t *testing.T) {
		t.Parallel()

		_, err := etree.Decode(strings.NewReader(`<memberSearchIndex><member`))
		require.Error(t, err)
		assert.Equal(t, javadex.EINVALID, javadex.ErrorCode(err))
	})

	t.Run("empty index", func(t *testing.T) {
		t.Parallel()

		members, err := etree.Decode(strings.NewReader(`<memberSearchIndex/>`))
		require.NoError(t, err)
		assert.Empty(t, members)
	})
}
