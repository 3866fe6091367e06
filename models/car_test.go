package models

import "testing"

func TestPrimaryImage(t *testing.T) {
	tests := []struct {
		name   string
		images []CarImage
		wantID int
	}{
		{
			name:   "no images",
			images: nil,
			wantID: 0,
		},
		{
			name: "explicit primary wins regardless of position",
			images: []CarImage{
				{ID: 1},
				{ID: 2, IsPrimary: true},
				{ID: 3},
			},
			wantID: 2,
		},
		{
			name: "first image is the fallback when none is flagged",
			images: []CarImage{
				{ID: 4},
				{ID: 5},
			},
			wantID: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car := Car{Images: tt.images}
			got := car.PrimaryImage()
			if tt.wantID == 0 {
				if got != nil {
					t.Errorf("PrimaryImage() = %+v, want nil", got)
				}
				return
			}
			if got == nil || got.ID != tt.wantID {
				t.Errorf("PrimaryImage() = %+v, want id %d", got, tt.wantID)
			}
		})
	}
}
