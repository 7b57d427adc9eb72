package polyglot

import "log/slog"

// Plugin is an extension point of the engine. A plugin always has a name;
// everything else is optional and discovered through the capability
// interfaces below. Capabilities are checked by type assertion, so a plugin
// implements exactly the subset it needs.
type Plugin interface {
	Name() string
}

// Transformer rewrites resolved message text before interpolation. Transforms
// run in registration order; the output of one feeds the next.
type Transformer interface {
	Transform(key, text string, params M, locale string) (string, error)
}

// BeforeLoader preprocesses an incoming message tree before it is merged into
// the store. Loaders run in registration order, each consuming the previous
// loader's output.
type BeforeLoader interface {
	BeforeLoad(locale string, messages map[string]any) (map[string]any, error)
}

// AfterLoader is notified after an incoming message tree has been merged.
// It observes the merged tree; its effects on the tree are ignored.
type AfterLoader interface {
	AfterLoad(locale string, merged map[string]any)
}

// Formatter contributes a formatter registry entry under the plugin's name,
// usable in templates as {{param:<name>}}.
type Formatter interface {
	Format(value any, spec, locale string) (string, error)
}

// applyTransforms runs the transform stage of the pipeline. A transform that
// returns an error or panics is skipped and the text passes through that
// plugin unchanged.
func applyTransforms(plugins []Plugin, key, text string, params M, locale string, log *slog.Logger) string {
	for _, p := range plugins {
		tr, ok := p.(Transformer)
		if !ok {
			continue
		}

		out, err := callTransform(tr, key, text, params, locale)
		if err != nil {
			log.Warn("plugin transform failed", "plugin", p.Name(), "key", key, "error", err)
			continue
		}
		text = out
	}
	return text
}

func callTransform(tr Transformer, key, text string, params M, locale string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError("transform", r)
		}
	}()
	return tr.Transform(key, text, params, locale)
}

// applyBeforeLoad runs the load-time preprocessing chain. A failing plugin is
// skipped; the message tree is unchanged by it.
func applyBeforeLoad(plugins []Plugin, locale string, messages map[string]any, log *slog.Logger) map[string]any {
	for _, p := range plugins {
		bl, ok := p.(BeforeLoader)
		if !ok {
			continue
		}

		out, err := callBeforeLoad(bl, locale, messages)
		if err != nil {
			log.Warn("plugin beforeLoad failed", "plugin", p.Name(), "locale", locale, "error", err)
			continue
		}
		if out != nil {
			messages = out
		}
	}
	return messages
}

func callBeforeLoad(bl BeforeLoader, locale string, messages map[string]any) (result map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError("beforeLoad", r)
		}
	}()
	return bl.BeforeLoad(locale, messages)
}

// applyAfterLoad notifies plugins of a completed merge. Panics are contained
// so one plugin cannot block the others.
func applyAfterLoad(plugins []Plugin, locale string, merged map[string]any, log *slog.Logger) {
	for _, p := range plugins {
		al, ok := p.(AfterLoader)
		if !ok {
			continue
		}

		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Warn("plugin afterLoad failed", "plugin", p.Name(), "locale", locale, "error", panicError("afterLoad", r))
				}
			}()
			al.AfterLoad(locale, merged)
		}()
	}
}
