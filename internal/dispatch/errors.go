package dispatch

import "errors"

// ErrMIPInfeasible is returned when the first (MIP) solve has no feasible
// point, before any relinearization or pricing is attempted.
var ErrMIPInfeasible = errors.New("dispatch: MIP solve infeasible")

// ErrLPInfeasible is returned when the relinearized LP solve has no
// feasible point.
var ErrLPInfeasible = errors.New("dispatch: relinearized LP solve infeasible")

// ErrPriceCapsRequired is returned when the OCD re-run is enabled but the
// energy/FCAS price caps needed to detect a triggering price are unset.
var ErrPriceCapsRequired = errors.New("dispatch: OCD re-run requires energy and FCAS price caps")
