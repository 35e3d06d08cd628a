package tree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riscy-lib/rbuild/internal/descriptor"
	"github.com/riscy-lib/rbuild/internal/testutil"
)

func TestBuild_SingleRootWithDependency(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"tb/top.bld":  "src:\n  - a.sv\nneeds:\n  - ../rtl/dep.bld\n",
		"rtl/dep.bld": "src:\n  - b.sv\n",
	})

	tr, err := NewBuilder().Build(ctx, filepath.Join(dir, "tb/top.bld"))
	require.NoError(t, err)
	require.Len(t, tr.Roots, 1)

	root := tr.Roots[0]
	assert.Equal(t, filepath.Join(dir, "tb/top.bld"), root.Path)
	assert.Equal(t, []string{filepath.Join(dir, "tb/a.sv")}, root.Src)
	require.Len(t, root.Needs, 1)

	dep := root.Needs[0]
	assert.Equal(t, filepath.Join(dir, "rtl/dep.bld"), dep.Path)
	assert.Equal(t, []string{filepath.Join(dir, "rtl/b.sv")}, dep.Src)
	assert.Empty(t, dep.Needs)

	// Dependency-first: dep.bld's node comes out before the root's.
	var order []*Node
	for node := range tr.Traverse(true) {
		order = append(order, node)
	}
	require.Len(t, order, 2)
	assert.Same(t, dep, order[0])
	assert.Same(t, root, order[1])
}

func TestBuild_MultipleRootsInInputOrder(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"one.bld": "src:\n  - one.sv\n",
		"two.bld": "src:\n  - two.sv\n",
	})

	tr, err := NewBuilder().Build(ctx,
		filepath.Join(dir, "two.bld"),
		filepath.Join(dir, "one.bld"),
	)
	require.NoError(t, err)
	require.Len(t, tr.Roots, 2)
	assert.Equal(t, filepath.Join(dir, "two.bld"), tr.Roots[0].Path)
	assert.Equal(t, filepath.Join(dir, "one.bld"), tr.Roots[1].Path)
}

func TestBuild_DiamondSharesOneInstance(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"top.bld":    "needs:\n  - left.bld\n  - right.bld\n",
		"left.bld":   "needs:\n  - shared.bld\n",
		"right.bld":  "needs:\n  - shared.bld\n",
		"shared.bld": "src:\n  - shared.sv\n",
	})

	tr, err := NewBuilder().Build(ctx, filepath.Join(dir, "top.bld"))
	require.NoError(t, err)

	root := tr.Roots[0]
	require.Len(t, root.Needs, 2)
	left, right := root.Needs[0], root.Needs[1]
	require.Len(t, left.Needs, 1)
	require.Len(t, right.Needs, 1)

	// Both branches converge on the same node instance.
	assert.Same(t, left.Needs[0], right.Needs[0])
}

func TestBuild_DiamondIsNotReportedAsLoop(t *testing.T) {
	// mid.bld is an ancestor while its own subtree loads, then gets
	// referenced again through alt.bld. The second reference is legitimate
	// and must be served from cache, not flagged as a loop.
	ctx, logs := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"top.bld":  "needs:\n  - mid.bld\n  - alt.bld\n",
		"mid.bld":  "needs:\n  - leaf.bld\n",
		"alt.bld":  "needs:\n  - mid.bld\n",
		"leaf.bld": "src:\n  - leaf.sv\n",
	})

	tr, err := NewBuilder().Build(ctx, filepath.Join(dir, "top.bld"))
	require.NoError(t, err)

	root := tr.Roots[0]
	require.Len(t, root.Needs, 2)
	mid, alt := root.Needs[0], root.Needs[1]
	require.Len(t, alt.Needs, 1)
	assert.Same(t, mid, alt.Needs[0])
	assert.NotContains(t, logs.String(), "Dropping unusable dependency.")
}

func TestBuild_SelfReferenceDropped(t *testing.T) {
	ctx, logs := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"self.bld": "src:\n  - a.sv\nneeds:\n  - self.bld\n",
	})

	tr, err := NewBuilder().Build(ctx, filepath.Join(dir, "self.bld"))
	require.NoError(t, err)
	assert.Empty(t, tr.Roots[0].Needs)
	assert.Contains(t, logs.String(), "Dropping unusable dependency.")
}

func TestBuild_TransitiveLoopDropped(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"a.bld": "needs:\n  - b.bld\n",
		"b.bld": "needs:\n  - c.bld\n",
		"c.bld": "needs:\n  - a.bld\n",
	})

	tr, err := NewBuilder().Build(ctx, filepath.Join(dir, "a.bld"))
	require.NoError(t, err)

	a := tr.Roots[0]
	require.Len(t, a.Needs, 1)
	b := a.Needs[0]
	require.Len(t, b.Needs, 1)
	c := b.Needs[0]
	// The back edge to a is the one that gets dropped.
	assert.Empty(t, c.Needs)
}

func TestBuild_MissingNeedDroppedSilently(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"top.bld":  "needs:\n  - gone.bld\n  - real.bld\n",
		"real.bld": "src:\n  - real.sv\n",
	})

	tr, err := NewBuilder().Build(ctx, filepath.Join(dir, "top.bld"))
	require.NoError(t, err)

	// The unusable edge is gone, the remaining needs still loaded.
	root := tr.Roots[0]
	require.Len(t, root.Needs, 1)
	assert.Equal(t, filepath.Join(dir, "real.bld"), root.Needs[0].Path)
}

func TestBuild_MissingRootFails(t *testing.T) {
	ctx, logs := testutil.Context(t)
	dir := t.TempDir()

	_, err := NewBuilder().Build(ctx, filepath.Join(dir, "absent.bld"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDescriptor)
	assert.Contains(t, logs.String(), "Root build file does not exist.")
}

func TestBuild_DirectoryRootFails(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"sub/leaf.bld": "",
	})

	_, err := NewBuilder().Build(ctx, filepath.Join(dir, "sub"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAFile)
}

func TestBuild_DirectoryNeedDropped(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"top.bld":      "needs:\n  - sub\n",
		"sub/leaf.bld": "",
	})

	tr, err := NewBuilder().Build(ctx, filepath.Join(dir, "top.bld"))
	require.NoError(t, err)
	assert.Empty(t, tr.Roots[0].Needs)
}

func TestBuild_NonStringNeedAbortsBuild(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"top.bld": "needs:\n  - mid.bld\n",
		"mid.bld": "needs:\n  - 42\n",
	})

	// The broken descriptor is nested behind a needs edge, but a type error
	// is structural and still fails the whole build.
	_, err := NewBuilder().Build(ctx, filepath.Join(dir, "top.bld"))
	require.Error(t, err)
	assert.ErrorIs(t, err, descriptor.ErrInvalidNeedType)
}

func TestBuild_MalformedNeedAbortsBuild(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"top.bld": "needs:\n  - bad.bld\n",
		"bad.bld": "src: [unclosed\n",
	})

	_, err := NewBuilder().Build(ctx, filepath.Join(dir, "top.bld"))
	require.Error(t, err)
	assert.ErrorIs(t, err, descriptor.ErrMalformed)
}

func TestBuild_EmptyDescriptorIsLeaf(t *testing.T) {
	ctx, logs := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"empty.bld": "",
	})

	tr, err := NewBuilder().Build(ctx, filepath.Join(dir, "empty.bld"))
	require.NoError(t, err)

	root := tr.Roots[0]
	assert.Empty(t, root.Src)
	assert.Empty(t, root.Includes)
	assert.Empty(t, root.Needs)
	assert.Contains(t, logs.String(), "Build descriptor is empty.")
}

func TestBuild_PathsResolvedAgainstDescriptorDir(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"tb/top.bld":  "src:\n  - ./tb_top.sv\ninclude:\n  - ../include\nneeds:\n  - ../rtl/cpu.bld\n",
		"rtl/cpu.bld": "src:\n  - /abs/cpu.sv\n",
	})

	tr, err := NewBuilder().Build(ctx, filepath.Join(dir, "tb/top.bld"))
	require.NoError(t, err)

	root := tr.Roots[0]
	assert.Equal(t, []string{filepath.Join(dir, "tb/tb_top.sv")}, root.Src)
	assert.Equal(t, []string{filepath.Join(dir, "include")}, root.Includes)
	require.Len(t, root.Needs, 1)
	assert.Equal(t, []string{"/abs/cpu.sv"}, root.Needs[0].Src)
}

func TestBuild_SharedNodeAcrossRoots(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"first.bld":  "needs:\n  - common.bld\n",
		"second.bld": "needs:\n  - common.bld\n",
		"common.bld": "src:\n  - common.sv\n",
	})

	tr, err := NewBuilder().Build(ctx,
		filepath.Join(dir, "first.bld"),
		filepath.Join(dir, "second.bld"),
	)
	require.NoError(t, err)
	require.Len(t, tr.Roots, 2)
	assert.Same(t, tr.Roots[0].Needs[0], tr.Roots[1].Needs[0])
}
