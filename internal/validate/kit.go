package validate

// KitSetup reports whether the Quanti-Wells setup is complete.
func KitSetup(wellsReady, labelsDone bool) Message {
	if wellsReady && labelsDone {
		return success("Great! You have completed the Quanti-Wells setup.")
	}
	return warning("Please complete all steps before proceeding.")
}
