package settings

import "slices"

// Reduce applies action to state and returns the next state. It never
// mutates state; actions it does not handle return state unchanged.
func Reduce(state GlobalState, action Action) GlobalState {
	return GlobalState{
		Persistent: ReducePersistent(state.Persistent, action),
		Temporal:   ReduceTemporal(state.Temporal, action),
	}
}

// ReducePersistent handles the persistent partition's actions.
func ReducePersistent(state PersistentState, action Action) PersistentState {
	switch action := action.(type) {
	case PutStorage:
		state.Storage = action.Storage
	case PutLanguage:
		state.Language = action.Language
	case PutNavigationAllowedURLs:
		urls := cloneURLs(state.NavigationAllowedURLs)
		urls = append(urls, action.URLs...)
		slices.Sort(urls)
		state.NavigationAllowedURLs = urls
	case DeleteNavigationAllowedURLs:
		urls := cloneURLs(state.NavigationAllowedURLs)
		for _, url := range action.URLs {
			if index := slices.Index(urls, url); index >= 0 {
				urls = slices.Delete(urls, index, index+1)
			}
		}
		slices.Sort(urls)
		state.NavigationAllowedURLs = urls
	}
	return state
}

// ReduceTemporal handles the temporal partition's actions.
func ReduceTemporal(state TemporalState, action Action) TemporalState {
	switch action := action.(type) {
	case PutMessages:
		state.Messages = cloneMessages(action.Messages)
	case PutApp:
		state.App = action.App
	}
	return state
}
