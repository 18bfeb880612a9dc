// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package procmacro

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/macrohost/hirexpand/tt"
)

// Handler is a procedural macro's host-side implementation, registered
// by name. This module ships no actual out-of-process proc-macro host
// (spec.md explicitly scopes the expander's own implementation out; only
// its call contract is in scope), so Handler is how a caller — in
// practice, the package tests of procmacro and macrodef — plugs one in
// without standing up a real child process.
type Handler func(req ExpandRequest) (*tt.Subtree, error)

// LocalClient is a Client that dispatches directly to in-process
// Handlers rather than a real external process, while preserving the
// concurrency shape spec.md §5 requires of the real thing: "access is
// serialized per handle". It is grounded on ra_proc_macro/src/lib.rs's
// ProcMacroProcessExpander, whose every call crosses exactly one shared
// process handle; LocalClient's mutex stands in for that process's
// internal request queue, and each call still runs on its own goroutine
// (via errgroup) so a handler panic is recovered and classified as
// ErrPanic instead of taking the caller down with it, the same
// robustness guarantee a real out-of-process boundary gives for free.
type LocalClient struct {
	mu       sync.Mutex
	handlers map[string]Handler
}

// NewLocalClient builds an empty client; register handlers before first
// use with Register.
func NewLocalClient() *LocalClient {
	return &LocalClient{handlers: make(map[string]Handler)}
}

// Register installs h as the implementation of the procedural macro
// named name.
func (c *LocalClient) Register(name string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[name] = h
}

// Expand implements Client.
func (c *LocalClient) Expand(req ExpandRequest) (*tt.Subtree, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.handlers[req.MacroName]
	if !ok {
		return nil, &ClientError{Kind: ErrNotLoaded, Message: req.MacroName}
	}

	var g errgroup.Group
	var result *tt.Subtree
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &ClientError{Kind: ErrPanic, Message: fmt.Sprint(r)}
			}
		}()
		result, err = h(req)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
