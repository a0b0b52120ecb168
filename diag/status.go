// seehuhn.de/go/pdfmodel - structured page models from PDF content events
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package diag

// Status summarizes the outcome of processing a document.
type Status uint8

// Possible values for Status.
const (
	StatusOK Status = iota
	StatusWarnings
	StatusErrors
	StatusCritical
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarnings:
		return "warnings"
	case StatusErrors:
		return "errors"
	default:
		return "critical"
	}
}

// Status returns the document status implied by the worst retained
// diagnostic.  Info-level diagnostics do not affect the status.
func (t *Tracker) Status() Status {
	worst, ok := t.Worst()
	if !ok {
		return StatusOK
	}
	switch worst {
	case Info:
		return StatusOK
	case Warning:
		return StatusWarnings
	case Error:
		return StatusErrors
	default:
		return StatusCritical
	}
}
