package domain

import "path/filepath"

// Caller identifies the module that issued a resolution request.
type Caller struct {
	// Filename is the absolute path of the requesting module, or of the
	// directory the request is issued from when Dir is set.
	Filename string
	// Dir marks directory callers such as the program entry point.
	Dir bool
}

// FileCaller returns a caller for a module file.
func FileCaller(filename string) *Caller {
	return &Caller{Filename: filename}
}

// DirCaller returns a caller for a directory context.
func DirCaller(dir string) *Caller {
	return &Caller{Filename: dir, Dir: true}
}

// BaseDir returns the directory relative requests are resolved against.
func (c *Caller) BaseDir() string {
	if c.Dir {
		return c.Filename
	}
	return filepath.Dir(c.Filename)
}

// CompositeKey joins a caller identity and a request string into the key that
// identifies one resolution call site.
func CompositeKey(callerID, request string) string {
	return callerID + ":" + request
}
