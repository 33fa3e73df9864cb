package script

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Erumpet/focs/internal/memds"
	"github.com/rs/zerolog"
)

var (
	ErrExpectationFailed = errors.New("expectation failed")
	ErrLeak              = errors.New("leaked element buffers")
	ErrInvalidFree       = errors.New("invalid release of element buffers")
)

// A StepResult is the outcome of a step and the content of the list after it.
type StepResult struct {
	Step  int     `json:"step"`
	Op    string  `json:"op"`
	Ok    *bool   `json:"ok,omitempty"`
	Value *int64  `json:"value,omitempty"`
	List  []int64 `json:"list"`
}

type ExecutorConfig struct {
	//defaults to a disabled logger.
	Logger *zerolog.Logger
}

// An Executor runs a script on a list backed by a counting allocator: after the last step
// the list is released and leaked or doubly released buffers are reported as errors.
type Executor struct {
	script *Script
	codec  intCodec
	logger zerolog.Logger

	list      *memds.LinkedList
	allocator *memds.CountingAllocator
}

func NewExecutor(script *Script, config ExecutorConfig) (*Executor, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	codec, err := newIntCodec(script.Width)
	if err != nil {
		return nil, err
	}

	executor := &Executor{
		script: script,
		codec:  codec,
		logger: zerolog.Nop(),
	}

	if config.Logger != nil {
		executor.logger = *config.Logger
	}
	return executor, nil
}

// Run executes the steps in order on an empty list. It stops at the first failing step and
// returns the results of the steps executed so far.
func (e *Executor) Run(ctx context.Context) (results []StepResult, finalErr error) {
	e.allocator = memds.NewCountingAllocator(nil)

	list, err := memds.NewLinkedListWithConfig(memds.LinkedListConfig{
		ElementSize: e.codec.width,
		Allocator:   e.allocator,
		Logger:      &e.logger,
	})
	if err != nil {
		return nil, err
	}
	e.list = list

	defer func() {
		if err := e.releaseList(); err != nil && finalErr == nil {
			finalErr = err
		}
	}()

	for i, step := range e.script.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		stepNumber := i + 1
		e.logger.Debug().Int("step", stepNumber).Str("op", step.Op).Msg("execute step")

		result, err := e.execute(step)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", stepNumber, step.Op, err)
		}

		if err := e.list.Check(); err != nil {
			return results, fmt.Errorf("step %d (%s): %w", stepNumber, step.Op, err)
		}

		result.Step = stepNumber
		result.Op = step.Op
		result.List = e.values()
		results = append(results, result)
	}

	return results, nil
}

func (e *Executor) releaseList() error {
	e.list.Release()

	if n := e.allocator.DoubleFrees() + e.allocator.ForeignFrees(); n != 0 {
		e.logger.Error().Int("count", n).Msg("invalid buffer releases")
		return fmt.Errorf("%w: %d", ErrInvalidFree, n)
	}

	if n := e.allocator.Outstanding(); n != 0 {
		e.logger.Error().Int("count", n).Msg("leaked buffers")
		return fmt.Errorf("%w: %d", ErrLeak, n)
	}

	e.logger.Debug().
		Int("allocations", e.allocator.Allocations()).
		Int("frees", e.allocator.Frees()).
		Msg("list released")
	return nil
}

func (e *Executor) execute(step Step) (result StepResult, _ error) {
	list := e.list

	switch step.Op {
	case PUSH_HEAD, PUSH_TAIL:
		push := list.PushTail
		if step.Op == PUSH_HEAD {
			push = list.PushHead
		}
		for _, v := range step.Values {
			if err := push(e.codec.encode(v)); err != nil {
				return result, err
			}
		}
	case POP_HEAD:
		result = e.take(list.PopHead())
	case POP_TAIL:
		result = e.take(list.PopTail())
	case REMOVE:
		result = e.take(list.Remove(step.Index))
	case FETCH:
		result = e.take(list.Fetch(step.Index))
	case INSERT:
		err := list.Insert(e.codec.encode(step.Value), step.Index)
		if err != nil && !errors.Is(err, memds.ErrInvalidIndex) {
			return result, err
		}
		result.Ok = boolPtr(err == nil)
	case DELETE:
		result.Ok = boolPtr(list.Delete(step.Index))
	case CONTAINS:
		result.Ok = boolPtr(list.Contains(e.codec.encode(step.Value)))
	case ANY:
		result.Ok = boolPtr(list.Any(e.predicate(step.Predicate)))
	case ALL:
		result.Ok = boolPtr(list.All(e.predicate(step.Predicate)))
	case FILTER:
		result.Ok = boolPtr(list.Filter(e.predicate(step.Predicate)))
	case DROP_WHILE:
		result.Ok = boolPtr(list.DropWhile(e.predicate(step.Predicate)))
	case TAKE_WHILE:
		result.Ok = boolPtr(list.TakeWhile(e.predicate(step.Predicate)))
	case MAP:
		var allocErr error
		if err := list.Map(e.transform(step.Transform, &allocErr)); err != nil {
			return result, err
		}
		if allocErr != nil {
			return result, allocErr
		}
	case FOLDL, FOLDR:
		v, err := e.fold(step)
		if err != nil {
			return result, err
		}
		result.Value = &v
	case EXPECT:
		if actual := e.values(); !slices.Equal(actual, step.Values) {
			return result, fmt.Errorf("%w: list is %v instead of %v", ErrExpectationFailed, actual, step.Values)
		}
	case RELEASE:
		list.Release()
	default:
		return result, fmt.Errorf("%w: unknown operation '%s'", ErrInvalidStep, step.Op)
	}

	return result, nil
}

// fold runs a fold seeded with an element allocated by the list and releases every buffer
// it owns afterwards.
func (e *Executor) fold(step Step) (int64, error) {
	initial, err := e.list.NewElement()
	if err != nil {
		return 0, err
	}
	defer e.list.FreeElement(initial)
	e.codec.put(initial, step.Fold.Initial)

	var (
		allocErr error
		out      []byte
	)

	if step.Op == FOLDL {
		out, err = e.list.Foldl(e.combine(step.Fold, true, &allocErr), initial)
	} else {
		out, err = e.list.Foldr(e.combine(step.Fold, false, &allocErr), initial)
	}

	if err != nil {
		return 0, err
	}

	if !memds.SameBuffer(out, initial) {
		defer e.list.FreeElement(out)
	}

	if allocErr != nil {
		return 0, allocErr
	}
	return e.codec.decode(out), nil
}

// take records the element returned by a pop, remove or fetch and releases it.
func (e *Executor) take(buf []byte, ok bool) (result StepResult) {
	result.Ok = boolPtr(ok)
	if !ok {
		return
	}
	v := e.codec.decode(buf)
	result.Value = &v
	e.list.FreeElement(buf)
	return
}

func (e *Executor) values() []int64 {
	values := make([]int64, 0, e.list.Len())
	e.list.ForEachElem(func(i int, elem []byte) error {
		values = append(values, e.codec.decode(elem))
		return nil
	})
	return values
}

func boolPtr(b bool) *bool {
	return &b
}
