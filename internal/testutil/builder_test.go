// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outcaste-io/jsonidx/jsonidx"
)

func TestBuilderProducesOpenableArtifact(t *testing.T) {
	b := NewBuilder()
	b.AddDoc(map[string]interface{}{
		"a": "1",
		"b": []interface{}{"x", "y", "z"},
	})
	b.AddDoc(map[string]interface{}{"a": "2"})

	artifact, err := b.Build()
	require.NoError(t, err)

	r, err := jsonidx.Open(artifact)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, uint32(2), r.NumSourceDocs())

	bm, err := r.MatchingDocIDs(jsonidx.FilterNode{
		Kind:      jsonidx.KindPredicate,
		Predicate: jsonidx.Predicate{Kind: jsonidx.EQ, Key: "b[1]", Value: "y"},
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{0}, bm.ToArray())
}

func TestBuilderEmptyArtifact(t *testing.T) {
	b := NewBuilder()
	artifact, err := b.Build()
	require.NoError(t, err)

	r, err := jsonidx.Open(artifact)
	require.NoError(t, err)
	require.Equal(t, uint32(0), r.NumSourceDocs())
}
