// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package reports

import (
	"encoding/json"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

func renderJSON(p datatypes.ReportPayload) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
