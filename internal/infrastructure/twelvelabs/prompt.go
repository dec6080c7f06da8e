package twelvelabs

// analysisPrompt asks the video-understanding model for every product shown
// in a video, as a bare JSON array. The model still fences its output in
// markdown now and then; the normalizer strips that.
const analysisPrompt = `
List all the products shown in the video with the following details:

- **timeline** – Timestamp when the product appears, in the format [start_time, end_time] (in seconds).
- **brand** – Name of the brand.
- **product_name** – Full name of the product.
- **location** – Provide product locations as [x, y, width, height] in percentages of the frame:
    - **x, y**: Top-left corner coordinates (0,0 = top-left of video)
    - **width, height**: Product bounding box dimensions

- **price** – The price of the product shown or mentioned, if available.
- **description** – Summarize what is said or implied about the product in the video (e.g., via voiceover, subtitles, or customer testimonials).

⚠️ If multiple products appear in the same scene, list them separately with their own location coordinates.

**Respond with a valid JSON array only, no markdown formatting:**

[
  {
    "timeline": [start, end],
    "brand": "brand_name",
    "product_name": "product_name",
    "location": [x, y, width, height],
    "price": "price_info",
    "description": "product_description"
  }
]
`
