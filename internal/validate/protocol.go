package validate

// Protocol holds the reference data the checks compare against.
type Protocol struct {
	ReferenceSequence      []string
	InterferingMedications []string
}

// DefaultProtocol returns the standard reference sequence and interference set.
func DefaultProtocol() Protocol {
	return Protocol{
		ReferenceSequence:      append([]string(nil), DefaultReferenceSequence...),
		InterferingMedications: append([]string(nil), DefaultInterferingMedications...),
	}
}
