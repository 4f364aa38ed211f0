package scene

// IsSourceEnabled collapses a source's enabled/solo/mute state against
// the rest of the source list, per §3: "an externally computed
// is_source_enabled predicate collapses these". When any source in the
// scene is soloed, only soloed (and not muted) sources are active;
// otherwise a source is active when enabled and not muted.
func IsSourceEnabled(sources []Source, index int) bool {
	s := sources[index]
	if s.Mute {
		return false
	}

	anySolo := false
	for _, other := range sources {
		if other.Solo {
			anySolo = true
			break
		}
	}

	if anySolo {
		return s.Solo
	}
	return s.Enabled
}

// ActiveSources returns the subset of sources that are currently
// enabled per IsSourceEnabled.
func ActiveSources(sources []Source) []Source {
	out := make([]Source, 0, len(sources))
	for i, s := range sources {
		if IsSourceEnabled(sources, i) {
			out = append(out, s)
		}
	}
	return out
}
