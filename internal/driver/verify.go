package driver

import (
	"fmt"

	"stackless/internal/env"
	"stackless/internal/target"
)

// checkTransformation validates the parts of the transformation contract
// only visible across two adjacent snapshots: slots are never lost or
// retyped, recorded aliases persist, and the source-anchored spec-block map
// is untouched.
func checkTransformation(fe *env.FunctionEnv, prev, next *target.Data) error {
	if next.LocalCount() < prev.LocalCount() {
		return fmt.Errorf("local slots shrank: %d -> %d", prev.LocalCount(), next.LocalCount())
	}
	for i := 0; i < prev.LocalCount(); i++ {
		if next.LocalTypes[i] != prev.LocalTypes[i] {
			return fmt.Errorf("local slot %d changed type", i)
		}
	}

	if len(next.ReturnTypes) != len(prev.ReturnTypes) {
		return fmt.Errorf("return count changed: %d -> %d", len(prev.ReturnTypes), len(next.ReturnTypes))
	}

	for i := 0; i < fe.ParameterCount(); i++ {
		ret, ok := prev.RefParamAlias(i)
		if !ok {
			continue
		}
		got, ok := next.RefParamAlias(i)
		if !ok {
			return fmt.Errorf("alias for parameter %d was removed", i)
		}
		if got != ret {
			return fmt.Errorf("alias for parameter %d changed: %d -> %d", i, ret, got)
		}
	}

	prevGiven := prev.GivenSpecBlocks()
	nextGiven := next.GivenSpecBlocks()
	if len(nextGiven) != len(prevGiven) {
		return fmt.Errorf("source-anchored spec block count changed: %d -> %d", len(prevGiven), len(nextGiven))
	}
	for id, off := range prevGiven {
		got, ok := nextGiven[id]
		if !ok {
			return fmt.Errorf("source-anchored spec block %d disappeared", id)
		}
		if got != off {
			return fmt.Errorf("source-anchored spec block %d moved: offset %d -> %d", id, off, got)
		}
	}

	return nil
}
