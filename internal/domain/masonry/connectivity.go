package masonry

import (
	"fmt"
	"math"
)

// ConnectivityIssue is a wall link that does not match on both sides
type ConnectivityIssue struct {
	RoomID      string `json:"roomId"`
	WallID      string `json:"wallId"`
	ConnectedTo string `json:"connectedTo"`
	Reason      string `json:"reason"`
}

func (i ConnectivityIssue) String() string {
	return fmt.Sprintf("room %s wall %s -> %s: %s", i.RoomID, i.WallID, i.ConnectedTo, i.Reason)
}

// CheckConnectivity reports shared-wall links that would break the half-weight
// rule: a link to an unknown room, a link on an external wall, a link the other
// room does not return, or two sides of one wall with different lengths.
func CheckConnectivity(rooms []Room) []ConnectivityIssue {
	byID := make(map[string]Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}

	var issues []ConnectivityIssue
	for _, room := range rooms {
		for _, wall := range room.Walls {
			if wall.ConnectedTo == "" {
				continue
			}
			issue := ConnectivityIssue{RoomID: room.ID, WallID: wall.ID, ConnectedTo: wall.ConnectedTo}

			if wall.Type != WallInternal {
				issue.Reason = "connected wall is not internal"
				issues = append(issues, issue)
				continue
			}
			other, ok := byID[wall.ConnectedTo]
			if !ok {
				issue.Reason = "connected room not found"
				issues = append(issues, issue)
				continue
			}
			back, ok := returnWall(other, room.ID)
			if !ok {
				issue.Reason = "link is not returned by the connected room"
				issues = append(issues, issue)
				continue
			}
			if math.Abs(nonNeg(back.Length)-nonNeg(wall.Length)) > 1e-6 {
				issue.Reason = fmt.Sprintf("shared wall length %s differs from %s", wall.Length, back.Length)
				issues = append(issues, issue)
			}
		}
	}
	return issues
}

func returnWall(room Room, roomID string) (Wall, bool) {
	for _, w := range room.Walls {
		if w.IsShared() && w.ConnectedTo == roomID {
			return w, true
		}
	}
	return Wall{}, false
}
