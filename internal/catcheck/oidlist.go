// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catcheck

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// maxOIDLength - tokens of this length or longer cannot be OIDs.
const maxOIDLength = 32

var errNotArray = errors.New("not a valid 1-D array")

type tokenTooLongError struct {
	length int
}

func (e *tokenTooLongError) Error() string {
	return fmt.Sprintf("contains a token of %d characters", e.length)
}

// OIDList - tokens of an oidvector or oid[] value and the well-formedness verdict.
type OIDList struct {
	tokens []string
	err    error
}

// All - iterates over the tokens. A malformed list yields nothing.
func (l *OIDList) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if l.err != nil {
			return
		}
		for _, tok := range l.tokens {
			if !yield(tok) {
				return
			}
		}
	}
}

// Err - describes why the list is malformed or nil.
func (l *OIDList) Err() error {
	return l.err
}

func (l *OIDList) Len() int {
	if l.err != nil {
		return 0
	}
	return len(l.tokens)
}

// ParseVector - parses the space separated oidvector text form. Empty tokens are skipped.
func ParseVector(s string) *OIDList {
	l := &OIDList{}
	for tok := range strings.SplitSeq(s, " ") {
		if tok == "" {
			continue
		}
		if len(tok) >= maxOIDLength {
			return &OIDList{err: &tokenTooLongError{length: len(tok)}}
		}
		l.tokens = append(l.tokens, tok)
	}
	return l
}

// ParseArray - parses the one dimensional array text form {a,b,c}. The empty string and {} are
// empty lists.
func ParseArray(s string) *OIDList {
	if s == "" {
		return &OIDList{}
	}
	body, ok := strings.CutPrefix(s, "{")
	if !ok {
		return &OIDList{err: errNotArray}
	}
	end := strings.IndexByte(body, '}')
	if end == -1 || end != len(body)-1 {
		return &OIDList{err: errNotArray}
	}
	body = body[:end]
	if body == "" {
		return &OIDList{}
	}

	l := &OIDList{}
	for tok := range strings.SplitSeq(body, ",") {
		if tok == "" {
			return &OIDList{err: errNotArray}
		}
		if len(tok) >= maxOIDLength {
			return &OIDList{err: &tokenTooLongError{length: len(tok)}}
		}
		l.tokens = append(l.tokens, tok)
	}
	return l
}
