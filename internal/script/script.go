package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/Erumpet/focs/internal/utils"
	"github.com/goccy/go-yaml"
)

const (
	PUSH_HEAD  = "push_head"
	PUSH_TAIL  = "push_tail"
	POP_HEAD   = "pop_head"
	POP_TAIL   = "pop_tail"
	INSERT     = "insert"
	DELETE     = "delete"
	REMOVE     = "remove"
	FETCH      = "fetch"
	CONTAINS   = "contains"
	ANY        = "any"
	ALL        = "all"
	FILTER     = "filter"
	DROP_WHILE = "drop_while"
	TAKE_WHILE = "take_while"
	MAP        = "map"
	FOLDL      = "foldl"
	FOLDR      = "foldr"
	EXPECT     = "expect"
	RELEASE    = "release"

	MAX_OPERATION_NAME_DIFFERENCES = 3
)

var (
	OPERATIONS = []string{
		PUSH_HEAD, PUSH_TAIL, POP_HEAD, POP_TAIL, INSERT, DELETE, REMOVE, FETCH,
		CONTAINS, ANY, ALL, FILTER, DROP_WHILE, TAKE_WHILE, MAP, FOLDL, FOLDR, EXPECT, RELEASE,
	}

	ErrInvalidStep     = errors.New("invalid step")
	ErrUnknownOperator = errors.New("unknown operator")
)

// A Script describes a list of integers of Width bytes and a sequence of steps executed on it.
type Script struct {
	Width int    `yaml:"width"`
	Steps []Step `yaml:"steps"`
}

// A Step is a single operation, in YAML it is either a map with a single key (the operation)
// or a bare operation name for operations without arguments.
type Step struct {
	Op string

	Values    []int64        //push_head, push_tail, expect
	Value     int64          //insert, contains
	Index     int            //insert, delete, remove, fetch
	Predicate *PredicateSpec //any, all, filter, drop_while, take_while
	Transform *TransformSpec //map
	Fold      *FoldSpec      //foldl, foldr
}

type PredicateSpec struct {
	Op  string `yaml:"op"`
	Arg int64  `yaml:"arg"`
}

type TransformSpec struct {
	Op    string `yaml:"op"`
	Arg   int64  `yaml:"arg"`
	Alloc bool   `yaml:"alloc"`
}

type FoldSpec struct {
	Fn      string `yaml:"fn"`
	Initial int64  `yaml:"initial"`
	Alloc   bool   `yaml:"alloc"`
}

type insertArgs struct {
	Value int64 `yaml:"value"`
	Index int   `yaml:"index"`
}

// UnmarshalYAML implements the yaml.InterfaceUnmarshaler interface.
func (s *Step) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		s.Op = name
		return nil
	}

	var m map[string]any
	if err := unmarshal(&m); err != nil {
		return fmt.Errorf("%w: a step should be an operation name or a map with a single key", ErrInvalidStep)
	}

	if len(m) != 1 {
		return fmt.Errorf("%w: a step should have a single key, not %d", ErrInvalidStep, len(m))
	}

	for op, args := range m {
		s.Op = op
		if err := s.decodeArgs(args); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidStep, op, err)
		}
	}
	return nil
}

func (s *Step) decodeArgs(args any) error {
	//operations without arguments accept an empty value.
	if args == nil {
		return nil
	}

	switch s.Op {
	case PUSH_HEAD, PUSH_TAIL, EXPECT:
		if _, ok := args.([]any); !ok {
			var v int64
			if err := reencode(args, &v); err != nil {
				return err
			}
			s.Values = []int64{v}
			return nil
		}
		return reencode(args, &s.Values)
	case INSERT:
		var insert insertArgs
		if err := reencode(args, &insert); err != nil {
			return err
		}
		s.Value = insert.Value
		s.Index = insert.Index
		return nil
	case DELETE, REMOVE, FETCH:
		return reencode(args, &s.Index)
	case CONTAINS:
		return reencode(args, &s.Value)
	case ANY, ALL, FILTER, DROP_WHILE, TAKE_WHILE:
		s.Predicate = &PredicateSpec{}
		return reencode(args, s.Predicate)
	case MAP:
		s.Transform = &TransformSpec{}
		return reencode(args, s.Transform)
	case FOLDL, FOLDR:
		s.Fold = &FoldSpec{}
		return reencode(args, s.Fold)
	}
	return nil
}

// reencode decodes a generic YAML value into v.
func reencode(value any, v any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}

// Parse parses a YAML script and validates it, defaultWidth is used if the script does not
// specify a width.
func Parse(data []byte, defaultWidth int) (*Script, error) {
	var script Script
	if err := yaml.UnmarshalWithOptions(data, &script, yaml.Strict()); err != nil {
		return nil, err
	}

	if script.Width == 0 {
		script.Width = defaultWidth
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

func ParseFile(path string, defaultWidth int) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	script, err := Parse(data, defaultWidth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

// Validate checks the width and every step without executing anything, all errors are reported.
func (s *Script) Validate() error {
	var errs []error

	codec, err := newIntCodec(s.Width)
	if err != nil {
		errs = append(errs, err)
	}

	for i, step := range s.Steps {
		if err := step.validate(codec); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}

	return utils.CombineErrors(errs...)
}

func (s Step) validate(codec intCodec) error {
	if !slices.Contains(OPERATIONS, s.Op) {
		closest, _, found := utils.FindClosestString(context.Background(), OPERATIONS, s.Op, MAX_OPERATION_NAME_DIFFERENCES)
		if found {
			return fmt.Errorf("%w: unknown operation '%s', did you mean '%s' ?", ErrInvalidStep, s.Op, closest)
		}
		return fmt.Errorf("%w: unknown operation '%s'", ErrInvalidStep, s.Op)
	}

	//values are only range checked when a width is known.
	checkRange := func(v int64) error {
		if codec.width == 0 {
			return nil
		}
		return codec.checkRange(v)
	}

	switch s.Op {
	case PUSH_HEAD, PUSH_TAIL, EXPECT:
		for _, v := range s.Values {
			if err := checkRange(v); err != nil {
				return fmt.Errorf("%s: %w", s.Op, err)
			}
		}
	case INSERT, CONTAINS:
		if err := checkRange(s.Value); err != nil {
			return fmt.Errorf("%s: %w", s.Op, err)
		}
	case ANY, ALL, FILTER, DROP_WHILE, TAKE_WHILE:
		if s.Predicate == nil {
			return fmt.Errorf("%w: %s: missing predicate", ErrInvalidStep, s.Op)
		}
		if _, ok := PREDICATES[s.Predicate.Op]; !ok {
			return fmt.Errorf("%w: %s: %w '%s'", ErrInvalidStep, s.Op, ErrUnknownOperator, s.Predicate.Op)
		}
	case MAP:
		if s.Transform == nil {
			return fmt.Errorf("%w: %s: missing transform", ErrInvalidStep, s.Op)
		}
		if _, ok := TRANSFORMS[s.Transform.Op]; !ok {
			return fmt.Errorf("%w: %s: %w '%s'", ErrInvalidStep, s.Op, ErrUnknownOperator, s.Transform.Op)
		}
	case FOLDL, FOLDR:
		if s.Fold == nil {
			return fmt.Errorf("%w: %s: missing fold function", ErrInvalidStep, s.Op)
		}
		if _, ok := FOLD_FUNCTIONS[s.Fold.Fn]; !ok {
			return fmt.Errorf("%w: %s: %w '%s'", ErrInvalidStep, s.Op, ErrUnknownOperator, s.Fold.Fn)
		}
		if err := checkRange(s.Fold.Initial); err != nil {
			return fmt.Errorf("%s: %w", s.Op, err)
		}
	}
	return nil
}
