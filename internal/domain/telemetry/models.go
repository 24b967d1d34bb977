package telemetry

// Sample is a single point of a car telemetry trace.
type Sample struct {
	Distance float64 // meters from lap start
	Speed    float64 // km/h
}

// Trace is one driver's fastest-lap speed trace.
type Trace struct {
	DriverNumber string
	Label        string
	Samples      []Sample
}
