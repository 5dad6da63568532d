// Package resilience groups the fault-tolerance helpers used around calls to
// rewriting providers and web pages.
//
//   - circuitbreaker: gobreaker-backed breakers per provider and for page fetches
//   - retry: capped exponential backoff honoring Retry-After, retrying only
//     transient errors
//
// The breaker sits inside the retry loop, and an open breaker is final:
//
//	err := retry.Do(ctx, retry.ForRewriter(), "openai rewrite", func(ctx context.Context) error {
//	    out, err := circuitbreaker.Call(breaker, func() (string, error) {
//	        return client.Complete(ctx, prompt)
//	    })
//	    if errors.Is(err, circuitbreaker.ErrOpen) {
//	        return retry.Permanent(err)
//	    }
//	    result = out
//	    return err
//	})
package resilience
