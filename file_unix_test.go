//go:build !windows

package graft_test

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graft-runtime/graft"
)

// File wraps a raw file descriptor. Its copy constructor duplicates the
// descriptor with dup(2), so a clone owns its own descriptor but shares the
// underlying open file description, including the file offset.
type File struct {
	fd int
}

func (f *File) ToBool() bool { return f.fd > -1 }

func fileDef() graft.Def[File] {
	return graft.Def[File]{
		New: func() File { return File{fd: -1} },
		Copy: func(src *File) File {
			if src.fd < 0 {
				return File{fd: -1}
			}
			fd, err := syscall.Dup(src.fd)
			if err != nil {
				return File{fd: -1}
			}
			return File{fd: fd}
		},
		Free: func(f *File) {
			if f.fd > -1 {
				syscall.Close(f.fd)
				f.fd = -1
			}
		},
		Methods: map[string]any{
			"open": func(f *File, path string) error {
				fd, err := syscall.Open(path, syscall.O_RDWR|syscall.O_CREAT, 0o600)
				if err != nil {
					return err
				}
				f.fd = fd
				return nil
			},
			"write": func(f *File, data string) (int64, error) {
				n, err := syscall.Write(f.fd, []byte(data))
				return int64(n), err
			},
			"read": func(f *File, n int64) (string, error) {
				buf := make([]byte, n)
				got, err := syscall.Read(f.fd, buf)
				if err != nil {
					return "", err
				}
				return string(buf[:got]), nil
			},
			"rewind": func(f *File) error {
				_, err := syscall.Seek(f.fd, 0, 0)
				return err
			},
		},
	}
}

func newFileObject(t *testing.T, rt *graft.Runtime, path string) *graft.Object {
	t.Helper()
	class, ok := rt.LookupClass("File")
	if !ok {
		var err error
		class, err = graft.RegisterClass[File](rt, "File", fileDef())
		require.NoError(t, err)
	}
	obj, err := rt.NewInstance(class)
	require.NoError(t, err)
	_, err = rt.CallMethod(obj, "open", graft.String(path))
	require.NoError(t, err)
	return obj
}

func TestFileReadWrite(t *testing.T) {
	rt := graft.New()
	path := filepath.Join(t.TempDir(), "data")
	obj := newFileObject(t, rt, path)

	v, err := rt.CallMethod(obj, "write", graft.String("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.Int())

	_, err = rt.CallMethod(obj, "rewind")
	require.NoError(t, err)

	v, err = rt.CallMethod(obj, "read", graft.Int(5))
	require.NoError(t, err)
	assert.Equal(t, "hello", v.String())

	// An open file is truthy via ToBool.
	b, err := rt.Cast(graft.ObjectValue(obj), graft.KindBool)
	require.NoError(t, err)
	assert.Equal(t, graft.KindTrue, b.Kind())

	rt.Release(obj)
}

// Cloning duplicates the descriptor: the clone reads and writes
// independently of the source's lifetime, but the duplicated descriptor
// shares the open file description's offset. The shared offset is a
// documented caveat of descriptor duplication, not a defect.
func TestFileCloneSharesOffset(t *testing.T) {
	rt := graft.New()
	path := filepath.Join(t.TempDir(), "data")
	src := newFileObject(t, rt, path)

	_, err := rt.CallMethod(src, "write", graft.String("hello"))
	require.NoError(t, err)

	dup, err := rt.CloneObject(src)
	require.NoError(t, err)

	// The source's offset sits at end-of-file and the clone shares it:
	// reading from the clone yields nothing.
	v, err := rt.CallMethod(dup, "read", graft.Int(5))
	require.NoError(t, err)
	assert.Equal(t, "", v.String())

	// Rewinding the source moves the shared offset, so the clone now reads
	// from the start.
	_, err = rt.CallMethod(src, "rewind")
	require.NoError(t, err)
	v, err = rt.CallMethod(dup, "read", graft.Int(5))
	require.NoError(t, err)
	assert.Equal(t, "hello", v.String())

	// Destroying the source closes only its own descriptor; the clone keeps
	// working.
	require.True(t, rt.Release(src))
	_, err = rt.CallMethod(dup, "rewind")
	require.NoError(t, err)
	v, err = rt.CallMethod(dup, "read", graft.Int(5))
	require.NoError(t, err)
	assert.Equal(t, "hello", v.String())

	rt.Release(dup)

	// File contents on disk are what the source wrote.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
