// Package environment names the deployment environment (development, staging,
// production) and carries it through context.Context.
//
// # Usage
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	ctx = environment.WithContext(ctx, env)
//	environment.FromContext(ctx).IsProduction()
package environment
