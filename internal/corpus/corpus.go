// Package corpus holds the keyword lists used to gate triage input.
// The data is process-wide, read-only, and loaded once at init; callers
// share it by reference and must never mutate it.
package corpus

// SymptomPhrases are the lowercase phrases that mark input as
// symptom-related. Order matters: extracted symptom tags preserve the
// order of this list, not the order of appearance in the input.
var SymptomPhrases = []string{
	// General / common
	"fever",
	"high temperature",
	"chills",
	"sweating",
	"fatigue",
	"weakness",
	"cold",
	"malaise",
	"puffy",
	"swollen tongue",
	"headache",
	"dizziness",
	"confusion",
	"memory problems",
	"blurred vision",
	"vision problems",
	"hunger",
	"thirst",
	"cramp",

	// Gastrointestinal
	"nausea",
	"vomit",
	"vomiting",
	"throwing up",
	"diarrhea",
	"constipation",
	"abdominal pain",
	"bloating",
	"heartburn",
	"loss of appetite",
	"weight loss",
	"weight gain",
	"pain during urination",
	"dehydration",

	// Respiratory
	"cough",
	"shortness of breath",
	"breathlessness",
	"difficulty breathing",
	"chest pain",
	"chest tightness",
	"runny nose",
	"stuffy nose",
	"nasal congestion",
	"sore throat",
	"throat irritation",

	// Musculoskeletal / pain
	"joint pain",
	"muscle pain",
	"back pain",
	"arm pain",
	"leg pain",
	"body aches",

	// Skin / external
	"skin rash",
	"itching",
	"dry skin",
	"swelling",
	"pimple",
	"inflection",
	"acne",
	"breakout",
	"eye redness",
	"eye pain",
	"fungus",

	// Neurological / psychiatric
	"tremors",
	"fainting",
	"numbness",
	"tingling",
	"pins and needles",
	"insomnia",
	"excessive sleepiness",
	"anxiety",
	"depression",
	"irritability",

	// Cardiovascular / heart
	"palpitations",
	"rapid heartbeat",
	"heart racing",
	"high blood pressure",
	"low blood pressure",
	"heart rate",
	"heart attack",

	// Urinary / reproductive
	"frequent urination",
	"painful urination",
	"blood in urine",
	"penis pain",
	"vaginal bleeding",
	"menstrual bleeding",

	// Bleeding / emergency
	"bleeding",
	"blood in stool",
	"blood in vomit",
	"nosebleed",
	"coughing blood",
	"hemorrhage",

	// Other serious / warning signs
	"severe headache",
	"difficulty speaking",
	"slurred speech",
	"facial drooping",
	"shortness of breath at rest",
	"swelling of face or lips",
	"loss of consciousness",
}

// BodyParts are body-part nouns matched case-insensitively. A body part
// only gates input in when the text also contains "pain" somewhere.
// Nouns are kept in singular form so that substring containment also
// covers the regular plural ("arm" matches both "arm" and "arms");
// irregular plurals that do not contain their singular are listed
// alongside it.
var BodyParts = []string{
	"Head",
	"Brain",
	"Eye",
	"Ear",
	"Nose",
	"Mouth",
	"Tooth",
	"Teeth",
	"Tongue",
	"Throat",
	"Neck",
	"Shoulder",
	"Arm",
	"Elbow",
	"Wrist",
	"Hand",
	"Finger",
	"Chest",
	"Heart",
	"Lung",
	"Rib",
	"Back",
	"Spine",
	"Abdomen",
	"Stomach",
	"Liver",
	"Kidney",
	"Pancreas",
	"Intestine",
	"Small intestine",
	"Large intestine",
	"Bladder",
	"Gallbladder",
	"Spleen",
	"Appendix",
	"Esophagus",
	"Trachea",
	"Diaphragm",
	"Pelvis",
	"Genitals",
	"Prostate",
	"Ovary",
	"Ovaries",
	"Uterus",
	"Testes",
	"Testicle",
	"Buttock",
	"Hip",
	"Leg",
	"Thigh",
	"Knee",
	"Calf",
	"Calves",
	"Ankle",
	"Foot",
	"Feet",
	"Toe",
	"Skin",
	"Muscle",
	"Tendon",
	"Ligament",
	"Joint",
	"Blood vessel",
	"Artery",
	"Arteries",
	"Vein",
	"Lymph node",
	"Nerve",
	"Bone",
	"Bone marrow",
}
