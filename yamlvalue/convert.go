package yamlvalue

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"go.tsion.dev/tsion"
)

// Sentinel errors returned by [Parse] and [Config.Validate].
var (
	ErrEmptyDocument = errors.New("empty yaml document")
	ErrInvalidKey    = errors.New("mapping key is not a scalar")
	ErrUnknownFormat = errors.New("unknown format")
	ErrSameFormat    = errors.New("source and destination format must differ")
)

// Parse reads a single YAML document from src and converts it to a
// [tsion.Value]. Only the first document in a multi-document stream is
// converted; callers that need every document should split on "---"
// themselves and call Parse once per document.
func Parse(src []byte) (tsion.Value, error) {
	file, err := parser.ParseBytes(src, 0)
	if err != nil {
		return tsion.Value{}, fmt.Errorf("parse yaml: %w", err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return tsion.Value{}, ErrEmptyDocument
	}

	anchors := buildAnchorMap(file.Docs[0].Body)

	return nodeToValue(file.Docs[0].Body, anchors)
}

// buildAnchorMap indexes every anchor definition in the document by name,
// so aliases can be resolved to their target node during conversion.
func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)
	walkAnchors(node, anchors)

	return anchors
}

func walkAnchors(node ast.Node, anchors map[string]ast.Node) {
	switch n := node.(type) {
	case *ast.AnchorNode:
		if n.Name != nil {
			anchors[n.Name.String()] = n.Value
		}

		walkAnchors(n.Value, anchors)
	case *ast.MappingNode:
		for _, v := range n.Values {
			walkAnchors(v, anchors)
		}
	case *ast.MappingValueNode:
		walkAnchors(n.Key, anchors)
		walkAnchors(n.Value, anchors)
	case *ast.SequenceNode:
		for _, v := range n.Values {
			walkAnchors(v, anchors)
		}
	case *ast.TagNode:
		walkAnchors(n.Value, anchors)
	}
}

// nodeToValue converts a single YAML AST node to a [tsion.Value],
// resolving tags, anchors, and aliases along the way.
func nodeToValue(node ast.Node, anchors map[string]ast.Node) (tsion.Value, error) {
	switch n := node.(type) {
	case *ast.TagNode:
		return nodeToValue(n.Value, anchors)
	case *ast.AnchorNode:
		return nodeToValue(n.Value, anchors)
	case *ast.AliasNode:
		target, ok := anchors[n.Value.String()]
		if !ok {
			return tsion.Value{}, fmt.Errorf("alias %q: %w", n.Value.String(), errUnresolvedAlias)
		}

		return nodeToValue(target, anchors)
	case *ast.NullNode:
		return tsion.Null(), nil
	case *ast.BoolNode:
		return tsion.Bool(n.Value), nil
	case *ast.IntegerNode:
		return integerToValue(n.Value), nil
	case *ast.FloatNode:
		return tsion.Number(n.Value), nil
	case *ast.InfinityNode:
		return tsion.Number(n.Value), nil
	case *ast.NanNode:
		return tsion.Number(math.NaN()), nil
	case *ast.StringNode:
		return tsion.String(n.Value), nil
	case *ast.LiteralNode:
		if n.Value == nil {
			return tsion.String(""), nil
		}

		return tsion.String(n.Value.Value), nil
	case *ast.SequenceNode:
		return sequenceToValue(n, anchors)
	case *ast.MappingNode:
		return mappingToValue(n.Values, anchors)
	case *ast.MappingValueNode:
		return mappingToValue([]*ast.MappingValueNode{n}, anchors)
	case nil:
		return tsion.Null(), nil
	default:
		return tsion.Null(), nil
	}
}

func sequenceToValue(seq *ast.SequenceNode, anchors map[string]ast.Node) (tsion.Value, error) {
	items := make([]tsion.Value, len(seq.Values))

	for i, item := range seq.Values {
		v, err := nodeToValue(item, anchors)
		if err != nil {
			return tsion.Value{}, fmt.Errorf("sequence item %d: %w", i, err)
		}

		items[i] = v
	}

	return tsion.Array(items...), nil
}

func mappingToValue(values []*ast.MappingValueNode, anchors map[string]ast.Node) (tsion.Value, error) {
	obj := tsion.NewObject()

	for _, mvn := range values {
		key, err := mapKeyString(mvn.Key)
		if err != nil {
			return tsion.Value{}, err
		}

		v, err := nodeToValue(mvn.Value, anchors)
		if err != nil {
			return tsion.Value{}, fmt.Errorf("key %q: %w", key, err)
		}

		obj.Set(key, v)
	}

	return tsion.ObjectValue(obj), nil
}

// mapKeyString extracts a string key from a mapping key node. Only scalar
// keys are supported; complex (sequence/mapping) keys are rejected.
func mapKeyString(key ast.MapKeyNode) (string, error) {
	switch k := key.(type) {
	case *ast.StringNode:
		return k.Value, nil
	case *ast.IntegerNode:
		return fmt.Sprint(k.Value), nil
	case *ast.BoolNode:
		return fmt.Sprint(k.Value), nil
	case nil:
		return "", ErrInvalidKey
	default:
		if sn, ok := key.(ast.Node); ok {
			if _, isSeq := sn.(*ast.SequenceNode); isSeq {
				return "", ErrInvalidKey
			}

			if _, isMap := sn.(*ast.MappingNode); isMap {
				return "", ErrInvalidKey
			}

			return sn.String(), nil
		}

		return "", ErrInvalidKey
	}
}

// integerToValue converts a decoded YAML integer (int64 or uint64,
// depending on sign and magnitude) to a numeric [tsion.Value].
func integerToValue(v any) tsion.Value {
	switch n := v.(type) {
	case int64:
		return tsion.Int(n)
	case uint64:
		if n <= math.MaxInt64 {
			return tsion.Int(int64(n))
		}

		return tsion.Number(float64(n))
	case int:
		return tsion.Int(int64(n))
	default:
		return tsion.Number(0)
	}
}

var errUnresolvedAlias = errors.New("unresolved alias")
