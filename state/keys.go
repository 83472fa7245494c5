// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys holds the state keys a call touches and the permissions it needs on
// each of them. Use [Keys.Add] so that duplicate keys union their
// permissions instead of overwriting them.
type Keys map[string]Permissions

type Permissions byte

func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Union merges [other] into k.
func (k Keys) Union(other Keys) Keys {
	for name, p := range other {
		k.Add(name, p)
	}
	return k
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}
