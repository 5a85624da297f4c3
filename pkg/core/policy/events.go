package policy

// eventRules guards events/{eventId}. Events are public and only trusted
// backend code writes them.
func eventRules(rc ruleContext, _ EventPath) Result {
	if rc.op == OpRead {
		return allow("events.read")
	}
	return deny("events.write")
}
