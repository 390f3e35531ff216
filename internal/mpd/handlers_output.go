package mpd

import "context"

// registerOutputCommands adds disableoutput, enableoutput, toggleoutput,
// outputs.
func registerOutputCommands(r *Registry) {
	r.Register("disableoutput", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Outputs().SetEnabled(context.Background(), args[0].(int), false)
	}, WithParams(Param{Name: "outputid", Convert: ConvUint}))

	r.Register("enableoutput", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Outputs().SetEnabled(context.Background(), args[0].(int), true)
	}, WithParams(Param{Name: "outputid", Convert: ConvUint}))

	r.Register("toggleoutput", func(ctx *Context, args []any) (Result, error) {
		id := args[0].(int)
		var current bool
		for _, o := range ctx.Core.Outputs().List(context.Background()) {
			if o.ID == id {
				current = o.Enabled
				break
			}
		}
		// The desired state is computed from the awaited current value
		// before negating, unlike a naive read-after-write race.
		return nil, ctx.Core.Outputs().SetEnabled(context.Background(), id, !current)
	}, WithParams(Param{Name: "outputid", Convert: ConvUint}))

	r.Register("outputs", func(ctx *Context, args []any) (Result, error) {
		var out []ResultTuple
		for _, o := range ctx.Core.Outputs().List(context.Background()) {
			out = append(out,
				Tuple("outputid", o.ID),
				Tuple("outputname", o.Name),
				Tuple("outputenabled", boolToInt(o.Enabled)),
			)
		}
		return out, nil
	})
}
