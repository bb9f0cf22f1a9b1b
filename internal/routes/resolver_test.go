// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package routes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, contents string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestListHandlerModules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "users/mod.rs", "pub mod _id;")
	writeFile(t, root, "users/_id.rs", `
pub async fn get(path: web::Path<u64>) -> impl Responder { todo!() }
pub async fn delete(path: web::Path<u64>) -> impl Responder { todo!() }
`)
	writeFile(t, root, "health.rs", "pub async fn get() -> impl Responder { todo!() }")
	writeFile(t, root, "notes.txt", "not rust")

	modules, err := ListHandlerModules(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"routes::users::_id::get",
		"routes::users::_id::delete",
		"routes::health::get",
	}, modules)
}

func TestListHandlerModules_SkipsModRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "mod.rs", "pub async fn get() {}")

	modules, err := ListHandlerModules(root)
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestListHandlerModules_MethodOrderIsFixed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "items.rs", `
pub async fn put() {}
pub async fn get() {}
pub async fn post() {}
`)

	modules, err := ListHandlerModules(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"routes::items::get",
		"routes::items::post",
		"routes::items::put",
	}, modules)
}

func TestDerivePath_ParamSegments(t *testing.T) {
	assert.Equal(t, "/users/{id}", DerivePath("src/routes/users/_id.rs"))
	assert.Equal(t, "/users/{id}/posts/{post_id}", DerivePath("src/routes/users/_id/posts/_post_id.rs"))
}

func TestDerivePath_PlainSegments(t *testing.T) {
	assert.Equal(t, "/health", DerivePath("src/routes/health.rs"))
	assert.Equal(t, "/users/search", DerivePath("src/routes/users/search.rs"))
}

func TestDerivePath_IndexMapsToDirectory(t *testing.T) {
	assert.Equal(t, "/users", DerivePath("src/routes/users/index.rs"))
	assert.Equal(t, "/", DerivePath("src/routes/index.rs"))
}

func TestDerivePath_AbsolutePrefixStripped(t *testing.T) {
	assert.Equal(t, "/users/{id}", DerivePath("/home/app/src/routes/users/_id.rs"))
}
