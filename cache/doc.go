// Package cache provides the resource codex: a process-lifetime store that
// maps a resource identity string to one shared, immutable GPU-state object.
//
// Identities are derived from a resource kind and its construction parameters
// with [Key]. Two requests with the same identity observe the same instance:
//
//	smp, err := cache.Resolve(c, cache.Key("sampler", "default"), func() (*bind.Sampler, error) {
//	    return bind.NewSampler(dev, bind.SamplerDefault)
//	})
//
// The codex never evicts. Entries live until [Codex.DestroyAll] at teardown.
//
// Thread Safety:
// Resolve is safe for concurrent use. Concurrent requests for the same
// identity construct at most one instance; requests for different identities
// construct in parallel. A build function may resolve other identities.
package cache
