package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/xeipuuv/gojsonschema"

	"github.com/entrhq/conductor/pkg/types"
)

// registeredTool binds a tool to its immutable descriptor and compiled schema.
// The parameter schema is kept as encoded JSON so every List caller decodes
// its own copy and cannot reach the catalog through the returned map.
type registeredTool struct {
	tool        Tool
	name        string
	description string
	parameters  []byte
	schema      *gojsonschema.Schema
}

// descriptor returns a fresh descriptor for the tool.
func (t *registeredTool) descriptor() types.ToolDescriptor {
	var params map[string]interface{}
	// parameters was produced by json.Marshal in Register and always decodes.
	_ = json.Unmarshal(t.parameters, &params)
	return types.ToolDescriptor{
		Name:        t.name,
		Description: t.description,
		Parameters:  params,
	}
}

// Registry is a name -> tool mapping that keeps registration order.
// The order returned by List is the catalog order presented to the model.
type Registry struct {
	mu       sync.RWMutex
	tools    *orderedmap.OrderedMap[string, *registeredTool]
	disabled []glob.Glob
	patterns []string
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry) error

// WithDisabledPatterns excludes tools whose names match any of the glob patterns
// (for example "playwright_*"). Matching tools are skipped by Register.
func WithDisabledPatterns(patterns ...string) RegistryOption {
	return func(r *Registry) error {
		for _, p := range patterns {
			if strings.TrimSpace(p) == "" {
				continue
			}
			g, err := glob.Compile(p)
			if err != nil {
				return errors.Wrapf(err, "invalid disabled tool pattern %q", p)
			}
			r.disabled = append(r.disabled, g)
			r.patterns = append(r.patterns, p)
		}
		return nil
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		tools: orderedmap.New[string, *registeredTool](),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// IsDisabled reports whether name matches a disabled pattern.
func (r *Registry) IsDisabled(name string) bool {
	for _, g := range r.disabled {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Register adds a tool. It fails with ErrDuplicateTool if the name is taken.
// Tools matching a disabled pattern are silently skipped.
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return errors.New("tool cannot be nil")
	}

	name := tool.Name()
	if name == "" {
		return errors.New("tool name cannot be empty")
	}
	if r.IsDisabled(name) {
		return nil
	}

	schemaDoc := tool.Schema()
	if schemaDoc == nil {
		schemaDoc = BaseToolSchema(map[string]interface{}{}, nil)
	}
	parameters, err := json.Marshal(schemaDoc)
	if err != nil {
		return errors.Wrapf(err, "tool %q has a parameter schema that is not valid JSON", name)
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(parameters))
	if err != nil {
		return errors.Wrapf(err, "tool %q has an invalid parameter schema", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools.Get(name); exists {
		return errors.Wrapf(ErrDuplicateTool, "tool %q is already registered", name)
	}

	r.tools.Set(name, &registeredTool{
		tool:        tool,
		name:        name,
		description: tool.Description(),
		parameters:  parameters,
		schema:      compiled,
	})
	return nil
}

// RegisterAll registers tools in order, stopping at the first failure.
func (r *Registry) RegisterAll(toolList ...Tool) error {
	for _, t := range toolList {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// List returns the descriptors in registration order. Each call returns
// independent copies; mutating them does not affect the registry.
func (r *Registry) List() []types.ToolDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.ToolDescriptor, 0, r.tools.Len())
	for pair := r.tools.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value.descriptor())
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, r.tools.Len())
	for pair := r.tools.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.tools.Get(name)
	if !ok {
		return nil, false
	}
	return entry.tool, true
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools.Len()
}

// Dispatch runs the named tool and returns a tagged result. It never returns
// an error: unknown names, schema violations, executor failures and panics are
// all reported through the result's Err.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]interface{}) (result types.ToolExecutionResult) {
	r.mu.RLock()
	entry, ok := r.tools.Get(name)
	r.mu.RUnlock()

	if !ok {
		err := errors.Wrapf(ErrUnknownTool, "tool %q is not registered; available tools: %s",
			name, strings.Join(r.Names(), ", "))
		return types.Failed(name, args, KindOf(err), err.Error())
	}

	if args == nil {
		args = map[string]interface{}{}
	}

	if err := validateArguments(entry.schema, args); err != nil {
		return types.Failed(name, args, types.ErrorKindArgumentParse, err.Error())
	}

	defer func() {
		if p := recover(); p != nil {
			result = types.Failed(name, args, types.ErrorKindToolExecution, fmt.Sprintf("tool panicked: %v", p))
		}
	}()

	output, err := entry.tool.Execute(ctx, args)
	if err != nil {
		return types.Failed(name, args, KindOf(err), err.Error())
	}
	return types.Succeeded(name, args, output)
}

// validateArguments checks args against the tool's compiled schema.
func validateArguments(schema *gojsonschema.Schema, args map[string]interface{}) error {
	// Round-trip through JSON so numeric types match what the model sent.
	raw, err := json.Marshal(args)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "arguments are not serializable"), ErrArgumentParse)
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errors.Mark(errors.Wrap(err, "schema validation failed"), ErrArgumentParse)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.Wrapf(ErrArgumentParse, "arguments do not match schema: %s", strings.Join(msgs, "; "))
}
