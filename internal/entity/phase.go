package entity

// Phase identifies the chronological quarter of the study calendar a day
// belongs to. Phase names follow the printed schedule vocabulary.
type Phase string

const (
	PhaseInicio   Phase = "inicio"
	PhaseMeio     Phase = "meio"
	PhaseFinal    Phase = "final"
	PhasePreProva Phase = "preprova"
)

// String returns the phase tag as printed on the schedule.
func (p Phase) String() string {
	return string(p)
}
