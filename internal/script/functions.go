package script

import (
	"github.com/Erumpet/focs/internal/memds"
	"github.com/Erumpet/focs/internal/utils"
)

var (
	PREDICATES = map[string]func(v, arg int64) bool{
		"lt":   func(v, arg int64) bool { return v < arg },
		"lte":  func(v, arg int64) bool { return v <= arg },
		"gt":   func(v, arg int64) bool { return v > arg },
		"gte":  func(v, arg int64) bool { return v >= arg },
		"eq":   func(v, arg int64) bool { return v == arg },
		"ne":   func(v, arg int64) bool { return v != arg },
		"even": func(v, arg int64) bool { return utils.Mod(v, 2) == 0 },
		"odd":  func(v, arg int64) bool { return utils.Mod(v, 2) == 1 },
	}

	TRANSFORMS = map[string]func(v, arg int64) int64{
		"add": func(v, arg int64) int64 { return v + arg },
		"sub": func(v, arg int64) int64 { return v - arg },
		"mul": func(v, arg int64) int64 { return v * arg },
		"neg": func(v, arg int64) int64 { return -v },
		"abs": func(v, arg int64) int64 { return utils.Abs(v) },
	}

	FOLD_FUNCTIONS = map[string]func(a, b int64) int64{
		"add": func(a, b int64) int64 { return a + b },
		"sub": func(a, b int64) int64 { return a - b },
		"max": utils.Max[int64],
		"min": utils.Min[int64],
	}
)

func (e *Executor) predicate(spec *PredicateSpec) func(elem []byte) bool {
	fn := PREDICATES[spec.Op]
	return func(elem []byte) bool {
		return fn(e.codec.decode(elem), spec.Arg)
	}
}

// transform returns a Map function that updates elements in place, or that answers with new
// elements allocated by the list if spec.Alloc is true.
func (e *Executor) transform(spec *TransformSpec, allocErr *error) func(elem []byte) memds.Outcome {
	fn := TRANSFORMS[spec.Op]

	return func(elem []byte) memds.Outcome {
		result := fn(e.codec.decode(elem), spec.Arg)
		return e.store(elem, result, spec.Alloc, allocErr)
	}
}

// combine returns a fold function computing fn(a, b), the result is stored in acc or in a new
// element if spec.Alloc is true. accIsFirst tells which argument is the accumulator.
func (e *Executor) combine(spec *FoldSpec, accIsFirst bool, allocErr *error) func(a, b []byte) memds.Outcome {
	fn := FOLD_FUNCTIONS[spec.Fn]

	return func(a, b []byte) memds.Outcome {
		result := fn(e.codec.decode(a), e.codec.decode(b))
		acc := b
		if accIsFirst {
			acc = a
		}
		return e.store(acc, result, spec.Alloc, allocErr)
	}
}

func (e *Executor) store(current []byte, v int64, alloc bool, allocErr *error) memds.Outcome {
	if !alloc || *allocErr != nil {
		e.codec.put(current, v)
		return memds.Mutated()
	}

	buf, err := e.list.NewElement()
	if err != nil {
		*allocErr = err
		e.codec.put(current, v)
		return memds.Mutated()
	}
	e.codec.put(buf, v)
	return memds.Replaced(buf)
}
